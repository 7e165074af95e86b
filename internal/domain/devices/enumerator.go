// Package devices reports mounted removable storage by walking the host's
// block-device hierarchy.
package devices

import (
	"context"
	"math"
	"os/exec"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/format"
)

// USBDevice describes one mounted removable leaf device.
type USBDevice struct {
	Device        string  `json:"device"`
	MountPoint    string  `json:"mount_point"`
	Label         string  `json:"label,omitempty"`
	Filesystem    string  `json:"filesystem,omitempty"`
	TotalSize     int64   `json:"total_size"`
	TotalSizeH    string  `json:"total_size_human"`
	UsedSize      int64   `json:"used_size"`
	UsedSizeH     string  `json:"used_size_human"`
	FreeSize      int64   `json:"free_size"`
	FreeSizeH     string  `json:"free_size_human"`
	UsagePercent  float64 `json:"usage_percent"`
	IsRemovable   bool    `json:"is_removable"`
	Vendor        string  `json:"vendor,omitempty"`
	Model         string  `json:"model,omitempty"`
	Serial        string  `json:"serial,omitempty"`
}

// Lister produces the raw block-device hierarchy as lsblk JSON.
// Injected so tests can feed fixture output.
type Lister interface {
	ListBlockDevices(ctx context.Context) ([]byte, error)
}

// ExecLister shells out to lsblk.
type ExecLister struct{}

// ListBlockDevices runs lsblk with JSON output.
func (ExecLister) ListBlockDevices(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "lsblk", "-J", "-o",
		"NAME,MOUNTPOINT,SIZE,FSTYPE,LABEL,VENDOR,MODEL,SERIAL,RM,RO,TYPE,UUID")
	return cmd.Output()
}

// Enumerator walks the lsblk tree and reports qualifying leaf devices.
type Enumerator struct {
	lister Lister
	logger *logging.Logger
}

// NewEnumerator creates a device enumerator.
func NewEnumerator(lister Lister, logger *logging.Logger) *Enumerator {
	return &Enumerator{lister: lister, logger: logger}
}

type blockDevice struct {
	Name       string        `json:"name"`
	MountPoint string        `json:"mountpoint"`
	FSType     string        `json:"fstype"`
	Label      string        `json:"label"`
	Vendor     string        `json:"vendor"`
	Model      string        `json:"model"`
	Serial     string        `json:"serial"`
	RM         flexBool      `json:"rm"`
	Children   []blockDevice `json:"children"`
}

type lsblkOutput struct {
	BlockDevices []blockDevice `json:"blockdevices"`
}

// List enumerates mounted removable devices. Any enumeration failure
// degrades to an empty result rather than propagating.
func (e *Enumerator) List(ctx context.Context) []USBDevice {
	devices := []USBDevice{}

	raw, err := e.lister.ListBlockDevices(ctx)
	if err != nil {
		e.logger.Error("Block device enumeration failed", zap.Error(err))
		return devices
	}

	var out lsblkOutput
	if err := sonic.Unmarshal(raw, &out); err != nil {
		e.logger.Error("Failed to parse lsblk output", zap.Error(err))
		return devices
	}

	for _, dev := range out.BlockDevices {
		e.collect(dev, &devices)
	}
	return devices
}

// collect descends the hierarchy. A device with children is never itself
// reported; only leaves qualify.
func (e *Enumerator) collect(dev blockDevice, devices *[]USBDevice) {
	if len(dev.Children) > 0 {
		for _, child := range dev.Children {
			e.collect(child, devices)
		}
		return
	}

	if !bool(dev.RM) || dev.MountPoint == "" {
		return
	}

	total, used, free := diskUsage(dev.MountPoint)
	var usagePct float64
	if total > 0 {
		usagePct = math.Round(float64(used)/float64(total)*1000) / 10
	}

	*devices = append(*devices, USBDevice{
		Device:       "/dev/" + dev.Name,
		MountPoint:   dev.MountPoint,
		Label:        dev.Label,
		Filesystem:   dev.FSType,
		TotalSize:    total,
		TotalSizeH:   format.Bytes(total),
		UsedSize:     used,
		UsedSizeH:    format.Bytes(used),
		FreeSize:     free,
		FreeSizeH:    format.Bytes(free),
		UsagePercent: usagePct,
		IsRemovable:  true,
		Vendor:       dev.Vendor,
		Model:        dev.Model,
		Serial:       dev.Serial,
	})
}

// diskUsage queries filesystem usage for a mount point. A failed query
// yields zeroes so one bad mount does not abort enumeration.
func diskUsage(mountPoint string) (total, used, free int64) {
	var st unix.Statfs_t
	if err := unix.Statfs(mountPoint, &st); err != nil {
		return 0, 0, 0
	}
	total = int64(st.Blocks) * int64(st.Bsize)
	free = int64(st.Bavail) * int64(st.Bsize)
	used = total - int64(st.Bfree)*int64(st.Bsize)
	return total, used, free
}

// flexBool tolerates lsblk versions that emit "0"/"1" strings instead of
// JSON booleans.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", `"1"`, "1":
		*b = true
	default:
		*b = false
	}
	return nil
}
