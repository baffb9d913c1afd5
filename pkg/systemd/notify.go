// Package systemd implements the sd_notify(3) messages used by daemon mode.
package systemd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const socketEnv = "NOTIFY_SOCKET"

func NotifyReady() error {
	return Notify("READY=1")
}

func MustNotifyReady() {
	if err := NotifyReady(); err != nil {
		panic(err)
	}
}

func getMonoTime() (uint64, error) {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		return 0, err
	}
	return uint64(ts.Sec)*1e6 + uint64(ts.Nsec)/1e3, nil
}

// NotifyReloading must be followed by NotifyReady once the reload is done.
func NotifyReloading() error {
	microsecs, err := getMonoTime()
	if err != nil {
		return err
	}
	return Notify(fmt.Sprintf("RELOADING=1\nMONOTONIC_USEC=%d", microsecs))
}

func MustNotifyReloading() {
	if err := NotifyReloading(); err != nil {
		panic(err)
	}
}

// NotifyStatus sets the single-line status shown by systemctl status.
func NotifyStatus(status string) error {
	status = strings.ReplaceAll(status, "\n", " ")
	return Notify("STATUS=" + status)
}

func NotifyStopping() error {
	return Notify("STOPPING=1")
}

// Notify is a no-op when the service manager did not set NOTIFY_SOCKET.
func Notify(message string) error {
	if len(message) == 0 {
		return errors.New("requires a message")
	}
	name := os.Getenv(socketEnv)
	if name == "" {
		return nil
	}
	if name[0] != '@' && name[0] != '/' {
		return errors.New("unsupported socket type")
	}

	if name[0] == '@' {
		name = "\x00" + name[1:]
	}

	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: name, Net: "unixgram"})
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Write([]byte(message))
	return err
}
