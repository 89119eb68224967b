// Command accelinfo reports the accelerator configuration of this machine.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/MrGo2008/torch"

	// Register the wgpu backend.
	_ "github.com/MrGo2008/torch/accel/wgpu"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		torch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ctx := torch.GlobalContext()

	if err := ctx.InitAccelerator(); err != nil {
		fmt.Printf("accelerator: unavailable (%v)\n", err)
		return
	}

	fmt.Printf("accelerator: available\n")
	fmt.Printf("compute:     %v\n", ctx.HasCompute())
	fmt.Printf("pinned mem:  %v\n", ctx.SupportsPinnedMemory())
	fmt.Printf("devices:     %d\n", ctx.DeviceCount())
	fmt.Printf("current:     %d\n", ctx.CurrentDevice())

	for i := 0; i < ctx.DeviceCount(); i++ {
		props, err := ctx.DeviceProperties(i)
		if err != nil {
			fmt.Printf("device %d: error: %v\n", i, err)
			continue
		}
		fmt.Printf("device %d: %s (%s), max buffer %d bytes, max workgroup %v\n",
			i, props.Name, props.Kind, props.MaxBufferSize, props.MaxWorkgroupSize)
	}

	if size, err := ctx.PlanCacheMaxSize(); err == nil {
		fmt.Printf("plan cache:  capacity %d\n", size)
	}
}
