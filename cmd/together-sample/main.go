package main

import (
	"github.com/kiosk404/together/internal/sample"
	"github.com/kiosk404/together/pkg/cli/genericclioptions"
	"github.com/kiosk404/together/pkg/together"
)

func main() {
	opts := together.NewOptions()
	opts.Config.Name = "sample"
	opts.Config.Paths = []string{"."}
	opts.Config.EnvPrefix = "SAMPLE"

	sample.NewCLI(genericclioptions.NewStdIOStreams(), together.WithOptions(opts)).Execute()
}
