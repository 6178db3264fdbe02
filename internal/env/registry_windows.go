//go:build windows

package env

import (
	"strings"
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"jdkswitch/internal/config"
	jerrors "jdkswitch/internal/errors"
)

const (
	HWND_BROADCAST   = 0xFFFF
	WM_SETTINGCHANGE = 0x001A
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	sendMessageW     = user32.NewProc("SendMessageW")
	systemEnvRegPath = `System\CurrentControlSet\Control\Session Manager\Environment`
	userEnvRegPath   = `Environment`
)

// Registry is the Windows environment store: the machine-wide key for
// the system scope, HKCU\Environment for the user scope.
type Registry struct {
	root registry.Key
	path string
}

// NewRegistry returns the store for scope.
func NewRegistry(scope string) *Registry {
	if scope == config.ScopeUser {
		return &Registry{root: registry.CURRENT_USER, path: userEnvRegPath}
	}
	return &Registry{root: registry.LOCAL_MACHINE, path: systemEnvRegPath}
}

// Open selects the registry store. storeFile is only used elsewhere.
func Open(scope, storeFile string) (Store, error) {
	return NewRegistry(scope), nil
}

// Get returns the unexpanded value of name, for both REG_SZ and
// REG_EXPAND_SZ values.
func (r *Registry) Get(name string) (string, error) {
	key, err := registry.OpenKey(r.root, r.path, registry.QUERY_VALUE)
	if err != nil {
		return "", jerrors.IOf(err, "opening registry key %s", r.path)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", jerrors.NotFoundf("variable %s is not set", name)
	}
	if err != nil {
		return "", jerrors.IOf(err, "reading %s", name)
	}
	return value, nil
}

// Set writes value as REG_EXPAND_SZ when it holds a %reference%, so the
// shell expands it, and as REG_SZ otherwise.
func (r *Registry) Set(name, value string) error {
	key, err := registry.OpenKey(r.root, r.path, registry.SET_VALUE)
	if err != nil {
		return jerrors.IOf(err, "opening registry key %s (run as administrator)", r.path)
	}
	defer key.Close()

	if strings.Contains(value, "%") {
		err = key.SetExpandStringValue(name, value)
	} else {
		err = key.SetStringValue(name, value)
	}
	if err != nil {
		return jerrors.IOf(err, "writing %s", name)
	}
	return nil
}

// Notify broadcasts WM_SETTINGCHANGE so Explorer and new terminals pick up
// the new environment.
func (r *Registry) Notify() {
	env := syscall.StringToUTF16Ptr("Environment")
	sendMessageW.Call(
		uintptr(HWND_BROADCAST),
		uintptr(WM_SETTINGCHANGE),
		0,
		uintptr(unsafe.Pointer(env)),
	)
}

// IsAdmin checks if the current process is running with administrator privileges
func IsAdmin() bool {
	var sid *windows.SID

	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	token := windows.Token(0)
	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}
