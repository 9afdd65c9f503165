package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/srg/ftms"
	"github.com/srg/ftms/internal/gatt"
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features <device-address>",
	Short: "Read and negotiate fitness machine capabilities",
	Long: `Connects to an FTMS device, reads the Fitness Machine Feature
characteristic and prints the negotiated capability report.

Examples:
  # Inspect an indoor bike
  ftmscap features AA:BB:CC:DD:EE:FF --type indoor-bike

  # Machine-readable output
  ftmscap features AA:BB:CC:DD:EE:FF --type treadmill --yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

var (
	featuresType    string
	featuresTimeout time.Duration
	featuresYAML    bool
)

func init() {
	featuresCmd.Flags().StringVarP(&featuresType, "type", "t", "", "Machine category (treadmill, cross-trainer, indoor-bike, rower)")
	featuresCmd.Flags().DurationVar(&featuresTimeout, "timeout", 30*time.Second, "Connect timeout")
	featuresCmd.Flags().BoolVar(&featuresYAML, "yaml", false, "Output as YAML")
	featuresCmd.Flags().BoolP("verbose", "V", false, "Enable verbose logging")
	_ = featuresCmd.MarkFlagRequired("type")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	address := args[0]

	mt := ftms.ParseMachineType(featuresType)
	if mt == 0 {
		return fmt.Errorf("unknown machine type %q (must be treadmill, cross-trainer, indoor-bike or rower)", featuresType)
	}

	logger, err := configureLogger(cmd, "verbose")
	if err != nil {
		return err
	}

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	ctx := cmd.Context()

	conn, err := gatt.Dial(ctx, address, &gatt.DialOptions{ConnectTimeout: featuresTimeout}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.WithError(closeErr).Error("failed to disconnect device")
		}
	}()

	caps, err := ftms.Discover(ctx, conn, mt, logger)
	if err != nil {
		return err
	}

	if featuresYAML {
		return outputYAML(caps)
	}
	return outputText(caps)
}

// capabilityReport is the YAML shape of a capability snapshot.
type capabilityReport struct {
	MachineType string                       `yaml:"machine_type"`
	Features    []string                     `yaml:"features"`
	Settings    []string                     `yaml:"settings"`
	Ranges      map[string]ftms.SettingRange `yaml:"ranges,omitempty"`
}

func outputYAML(caps *ftms.Capabilities) error {
	report := capabilityReport{
		MachineType: caps.Type.String(),
		Features:    caps.Features.Names(),
		Settings:    caps.Settings.Names(),
	}
	if caps.Ranges.Len() > 0 {
		report.Ranges = make(map[string]ftms.SettingRange, caps.Ranges.Len())
		for pair := caps.Ranges.Oldest(); pair != nil; pair = pair.Next() {
			report.Ranges[pair.Key.String()] = pair.Value
		}
	}

	out, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func outputText(caps *ftms.Capabilities) error {
	header := color.New(color.Bold)

	header.Printf("Machine type: ")
	fmt.Println(caps.Type)

	header.Println("Features:")
	printNames(caps.Features.Names())

	header.Println("Settings:")
	printNames(caps.Settings.Names())

	if caps.Ranges.Len() == 0 {
		return nil
	}

	header.Println("Ranges:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  SETTING\tMIN\tMAX\tSTEP")
	for pair := caps.Ranges.Oldest(); pair != nil; pair = pair.Next() {
		r := pair.Value
		fmt.Fprintf(w, "  %s\t%g\t%g\t%g\n", pair.Key, r.Min, r.Max, r.Step)
	}
	return w.Flush()
}

func printNames(names []string) {
	if len(names) == 0 {
		fmt.Println("  (none)")
		return
	}
	fmt.Printf("  %s\n", strings.Join(names, ", "))
}
