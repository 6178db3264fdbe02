package switcher

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jerrors "jdkswitch/internal/errors"
)

func TestFirstLine(t *testing.T) {
	got, err := firstLine("where", []byte("\r\nC:\\jdk\\bin\\java.exe\r\nC:\\Windows\\java.exe\r\n"))
	require.NoError(t, err)
	assert.Equal(t, `C:\jdk\bin\java.exe`, got)
}

func TestFirstLine_Errors(t *testing.T) {
	for name, out := range map[string][]byte{
		"empty":       nil,
		"blank lines": []byte("\r\n  \n"),
		"invalid":     {0xff, 0xfe, 'j'},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := firstLine("where", out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, jerrors.ErrProbe))
		})
	}
}

func TestCommandProbe_MissingCommand(t *testing.T) {
	p := &CommandProbe{name: "jdkswitch-no-such-command", args: []string{"java"}}
	_, err := p.Locate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, jerrors.ErrProbe))
}
