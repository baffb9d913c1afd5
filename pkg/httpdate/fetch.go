package httpdate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/taoky/httpclock/pkg/util"
)

// Request is sent verbatim to the selected host.
const Request = "HEAD / HTTP/1.1\r\n\r\n"

var DefaultHosts = []string{
	"www.google.com",
	"www.cloudflare.com",
	"www.microsoft.com",
}

type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type Config struct {
	Hosts       []string
	Port        int
	DialTimeout time.Duration
	Timeout     time.Duration
	MaxLineLen  util.SizeFlag
	OffsetHours int
	Lenient     bool
}

func (c *Config) InstallFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&c.Hosts, "host", "H", c.Hosts, "Time server to query, in order of preference (can be specified multiple times)")
	flags.IntVarP(&c.Port, "port", "P", c.Port, "TCP port of the time servers")
	flags.DurationVar(&c.DialTimeout, "dial-timeout", c.DialTimeout, "Connect timeout for each host")
	flags.DurationVarP(&c.Timeout, "timeout", "T", c.Timeout, "Timeout for reading the response once connected")
	flags.Var(&c.MaxLineLen, "max-line", "Maximum length of the Date header value")
	flags.IntVarP(&c.OffsetHours, "offset", "z", c.OffsetHours, "Fixed UTC offset in hours for local time (no DST)")
	flags.BoolVar(&c.Lenient, "lenient", c.Lenient, "Treat non-numeric date fields as 0 instead of failing")
}

func DefaultConfig() Config {
	return Config{
		Port:        80,
		DialTimeout: 5 * time.Second,
		Timeout:     10 * time.Second,
		MaxLineLen:  DefaultMaxLineLen,
		OffsetHours: -8,
	}
}

// Result describes one fetch. Record is only set when Fetch succeeds.
type Result struct {
	Host    string        `json:"host"`
	Record  Record        `json:"record"`
	Elapsed time.Duration `json:"elapsed"`
}

type Fetcher struct {
	Config Config

	// Dial defaults to net.Dialer.DialContext.
	Dial   DialFunc
	Logger logrus.FieldLogger

	parser Parser
}

func New(c Config) (*Fetcher, error) {
	if len(c.Hosts) == 0 {
		return nil, errors.New("no time server given")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", c.Port)
	}
	if c.OffsetHours < -24 || c.OffsetHours > 24 {
		return nil, fmt.Errorf("invalid UTC offset %d", c.OffsetHours)
	}
	dialer := &net.Dialer{Timeout: c.DialTimeout}
	return &Fetcher{
		Config: c,
		Dial:   dialer.DialContext,
		Logger: logrus.StandardLogger(),
		parser: Parser{OffsetHours: c.OffsetHours, Lenient: c.Lenient},
	}, nil
}

// Fetch gets the time from the first host that accepts a connection.
// Only one host is ever asked: a later failure (ErrProtocol, ErrParse)
// does not fall back to the next host, and the returned Result still
// names that host.
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	start := time.Now()
	conn, host, err := f.connect(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Host: host}
	log := f.Logger.WithField("host", host)
	log.Debug("connected to time server")

	value, err := f.readDate(ctx, conn)
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("%s: %w", host, err)
	}
	log.WithField("date", value).Debug("got Date header")

	res.Record, err = f.parser.Parse(value)
	if err != nil {
		return res, fmt.Errorf("%s: %w", host, err)
	}
	return res, nil
}

func (f *Fetcher) connect(ctx context.Context) (net.Conn, string, error) {
	var errs []error
	for _, host := range f.Config.Hosts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		addr := net.JoinHostPort(host, strconv.Itoa(f.Config.Port))
		dialCtx, cancel := ctx, context.CancelFunc(func() {})
		if f.Config.DialTimeout > 0 {
			dialCtx, cancel = context.WithTimeout(ctx, f.Config.DialTimeout)
		}
		conn, err := f.Dial(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			return conn, host, nil
		}
		f.Logger.WithField("host", host).WithError(err).Debug("connect failed")
		errs = append(errs, err)
	}
	return nil, "", fmt.Errorf("%w: %w", ErrConnect, errors.Join(errs...))
}

// readDate owns conn and closes it before returning.
func (f *Fetcher) readDate(ctx context.Context, conn net.Conn) (string, error) {
	defer conn.Close()

	if f.Config.Timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(f.Config.Timeout)); err != nil {
			return "", fmt.Errorf("%w: %w", ErrProtocol, err)
		}
	}
	// Unblock pending I/O when ctx is done.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := io.WriteString(conn, Request); err != nil {
		return "", fmt.Errorf("%w: send request: %w", ErrProtocol, err)
	}
	value, err := ScanDateHeader(bufio.NewReaderSize(conn, 512), int(f.Config.MaxLineLen))
	if err != nil && ctx.Err() != nil {
		return "", fmt.Errorf("%w: %w", err, ctx.Err())
	}
	return value, err
}
