package pidfile

import "os"

// System supplies the filesystem and process-identity operations the lock
// depends on. Production code uses the os-backed default; tests inject doubles
// to simulate permission failures, foreign holders, and corrupt content
// without touching global state.
type System interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Link(oldname, newname string) error
	Stat(name string) (os.FileInfo, error)
	Remove(name string) error
	Getpid() int
}

type osSystem struct{}

func (osSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osSystem) Link(oldname, newname string) error { return os.Link(oldname, newname) }

func (osSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (osSystem) Remove(name string) error { return os.Remove(name) }

func (osSystem) Getpid() int { return os.Getpid() }
