// Package health reports host vitals for the health command. Every probe
// degrades to "Unavailable" on failure so the report always renders.
package health

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/mstrand/econcal/internal/format"
)

const thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

const unavailable = "Unavailable"

// Report renders the server-health response block.
func Report() string {
	return format.Response("Server Health", []string{
		"CPU Usage: " + cpuUsage(),
		"Memory Usage: " + memoryUsage(),
		"Disk Usage: " + diskUsage(),
		"CPU Temperature: " + cpuTemperature(thermalZonePath),
		"Uptime: " + uptime(),
	}, "")
}

func cpuUsage() string {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return unavailable
	}
	return fmt.Sprintf("%.1f%%", percents[0])
}

func memoryUsage() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%%", vm.UsedPercent)
}

func diskUsage() string {
	usage, err := disk.Usage("/")
	if err != nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%%", usage.UsedPercent)
}

func uptime() string {
	seconds, err := host.Uptime()
	if err != nil {
		return unavailable
	}
	return (time.Duration(seconds) * time.Second).String()
}

// cpuTemperature reads the first thermal zone in millidegrees Celsius.
func cpuTemperature(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return unavailable
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f°C", float64(milli)/1000)
}
