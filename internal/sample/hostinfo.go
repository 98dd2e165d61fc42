package sample

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/together/pkg/cli/genericclioptions"
	hoststat "github.com/likexian/host-stat-go"
	"github.com/spf13/cobra"
)

// InfoOptions backs the "info" command.
type InfoOptions struct {
	genericclioptions.IOStreams
}

// NewInfoOptions returns an initialized InfoOptions instance.
func NewInfoOptions(ioStreams genericclioptions.IOStreams) *InfoOptions {
	return &InfoOptions{IOStreams: ioStreams}
}

// NewCmdInfo returns the "info" command printing facts about the host the
// CLI runs on.
func NewCmdInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "info",
		DisableFlagsInUseLine: true,
		Short:                 "Print the host information",
		Example: heredoc.Doc(`
			# Print the host information
			sample info`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := NewInfoOptions(genericclioptions.IOStreams{
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
			})
			return o.Run()
		},
	}
	return cmd
}

// Run prints host name, OS release, CPU cores and memory.
func (o *InfoOptions) Run() error {
	hostInfo, err := hoststat.GetHostInfo()
	if err != nil {
		return fmt.Errorf("get host info: %w", err)
	}
	memStat, err := hoststat.GetMemStat()
	if err != nil {
		return fmt.Errorf("get mem stat: %w", err)
	}
	cpuInfo, err := hoststat.GetCPUInfo()
	if err != nil {
		return fmt.Errorf("get cpu info: %w", err)
	}

	rows := [][2]string{
		{"HostName", hostInfo.HostName},
		{"OSRelease", hostInfo.Release + " " + hostInfo.OSBit},
		{"CPUCore", strconv.FormatUint(cpuInfo.CoreCount, 10)},
		{"MemTotal", strconv.FormatUint(memStat.MemTotal, 10) + "M"},
		{"MemFree", strconv.FormatUint(memStat.MemFree, 10) + "M"},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(o.Out, "%12s %s\n", row[0]+":", row[1])
	}
	return nil
}
