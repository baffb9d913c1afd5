package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/taoky/httpclock/pkg/hostlist"
	"github.com/taoky/httpclock/pkg/httpdate"
)

type hostsFlags struct {
	File string
}

func (h *hostsFlags) InstallFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&h.File, "hosts-file", "f", h.File, "Read time servers from file (one per line)")
}

// resolve picks the host list: positional args, then --host, then
// --hosts-file, then the built-in defaults.
func (h *hostsFlags) resolve(args []string, c *httpdate.Config) error {
	switch {
	case len(args) > 0:
		c.Hosts = args
	case len(c.Hosts) > 0:
	case h.File != "":
		hosts, err := hostlist.Load(h.File)
		if err != nil {
			return fmt.Errorf("failed to read hosts file: %w", err)
		}
		if len(hosts) == 0 {
			return fmt.Errorf("no hosts in %s", h.File)
		}
		c.Hosts = hosts
	default:
		c.Hosts = httpdate.DefaultHosts
	}
	return nil
}
