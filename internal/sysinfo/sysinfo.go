// Package sysinfo reads the host facts reported by the info endpoint.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// System describes the host the service is running on.
type System struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Architecture    string `json:"architecture"`
	CPUCount        int    `json:"cpu_count"`
	GoVersion       string `json:"go_version"`
}

// Collector queries the operating system on every call. It holds no state
// between calls and is safe for concurrent use.
type Collector struct {
	log           zerolog.Logger
	kernelVersion func(ctx context.Context) (string, error)
	kernelArch    func() (string, error)
	hostname      func() (string, error)
	numCPU        func() int
}

// NewCollector returns a Collector backed by gopsutil and the Go runtime.
// Lookups gopsutil cannot answer are logged at debug on log.
func NewCollector(log zerolog.Logger) *Collector {
	return &Collector{
		log:           log,
		kernelVersion: host.KernelVersionWithContext,
		kernelArch:    host.KernelArch,
		hostname:      os.Hostname,
		numCPU:        runtime.NumCPU,
	}
}

// Collect gathers the current host facts. Only the kernel release and machine
// architecture come from gopsutil; a failed lookup falls back to the Go
// runtime view of the host.
func (c *Collector) Collect(ctx context.Context) (System, error) {
	if err := ctx.Err(); err != nil {
		return System{}, err
	}

	name, err := c.hostname()
	if err != nil {
		return System{}, fmt.Errorf("resolve hostname: %w", err)
	}

	sys := System{
		Hostname:     name,
		Platform:     platformName(runtime.GOOS),
		Architecture: runtime.GOARCH,
		CPUCount:     c.numCPU(),
		GoVersion:    runtime.Version(),
	}

	version, err := c.kernelVersion(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return System{}, ctx.Err()
		}
		c.log.Debug().Err(err).Str("value", version).Msg("kernel version lookup failed")
	}
	sys.PlatformVersion = version

	arch, err := c.kernelArch()
	if err != nil {
		c.log.Debug().Err(err).Str("value", arch).Msg("kernel arch lookup failed")
	}
	if arch != "" {
		sys.Architecture = arch
	}

	if sys.CPUCount < 1 {
		sys.CPUCount = 1
	}

	return sys, nil
}

// platformName turns the lower-case GOOS identifier ("linux") into the
// conventional display name ("Linux").
func platformName(goos string) string {
	switch goos {
	case "":
		return ""
	case "darwin":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	default:
		return cases.Title(language.English).String(goos)
	}
}
