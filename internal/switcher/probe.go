package switcher

import (
	"bufio"
	"bytes"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	jerrors "jdkswitch/internal/errors"
)

// Prober finds the java launcher the shell would run.
type Prober interface {
	Locate() (string, error)
}

// CommandProbe runs `where java` on Windows and `which java` elsewhere and
// reports the first match. It has no timeout.
type CommandProbe struct {
	name string
	args []string
}

// NewCommandProbe returns the probe for this platform.
func NewCommandProbe() *CommandProbe {
	if runtime.GOOS == "windows" {
		return &CommandProbe{name: "where", args: []string{"java"}}
	}
	return &CommandProbe{name: "which", args: []string{"java"}}
}

func (p *CommandProbe) Locate() (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(p.name, p.args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "java not found on PATH"
		}
		return "", errors.Mark(errors.Wrapf(err, "%s java: %s", p.name, msg), jerrors.ErrProbe)
	}
	return firstLine(p.name, out)
}

// firstLine picks the first match from the probe output. where lists every
// match, one per line, with CRLF endings.
func firstLine(name string, out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", errors.Mark(errors.Newf("%s java: output is not valid UTF-8", name), jerrors.ErrProbe)
	}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	return "", errors.Mark(errors.Newf("%s java: no output", name), jerrors.ErrProbe)
}
