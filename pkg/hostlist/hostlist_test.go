package hostlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead(t *testing.T) {
	as := assert.New(t)
	input := `# preferred
time.example.com
  backup.example.net   # fallback

192.0.2.1
`
	hosts, err := Read(strings.NewReader(input))
	as.NoError(err)
	as.Equal([]string{"time.example.com", "backup.example.net", "192.0.2.1"}, hosts)

	hosts, err = Read(strings.NewReader(""))
	as.NoError(err)
	as.Empty(hosts)

	_, err = Read(strings.NewReader("two hosts\n"))
	as.ErrorContains(err, "line 1")

	_, err = Read(strings.NewReader(strings.Repeat("x", maxLine+1)))
	as.Error(err)
}

func TestLoad(t *testing.T) {
	as := assert.New(t)
	name := filepath.Join(t.TempDir(), "hosts")
	as.NoError(os.WriteFile(name, []byte("a.example\nb.example\n"), 0644))

	hosts, err := Load(name)
	as.NoError(err)
	as.Equal([]string{"a.example", "b.example"}, hosts)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	as.ErrorIs(err, os.ErrNotExist)
}
