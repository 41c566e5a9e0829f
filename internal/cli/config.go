package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"recwatch/internal/models"
	"recwatch/internal/recorder"
)

func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the recorder configuration",
	}

	cmd.AddCommand(newConfigGetCmd(deps))
	cmd.AddCommand(newConfigSetCmd(deps))

	return cmd
}

func newConfigGetCmd(deps *Dependencies) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the recorder configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			cfg, err := deps.Client.GetConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load recorder config: %s", recorder.Describe(err))
			}
			if asJSON {
				return printJSON(deps, cfg)
			}
			deps.terminal().Config(cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the configuration as JSON")
	return cmd
}

func newConfigSetCmd(deps *Dependencies) *cobra.Command {
	var update models.RecorderConfig

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change recorder settings; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := deps.commandContext(cmd)
			defer cancel()

			current, err := deps.Client.GetConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load recorder config: %s", recorder.Describe(err))
			}

			cfg := *current
			flags := cmd.Flags()
			if flags.Changed("rtsp-url1") {
				cfg.RTSPURL1 = update.RTSPURL1
			}
			if flags.Changed("rtsp-url2") {
				cfg.RTSPURL2 = update.RTSPURL2
			}
			if flags.Changed("save-path1") {
				cfg.SavePath1 = update.SavePath1
			}
			if flags.Changed("save-path2") {
				cfg.SavePath2 = update.SavePath2
			}
			if flags.Changed("segment-time") {
				cfg.SegmentTime = update.SegmentTime
			}
			if flags.Changed("dual-stream") {
				cfg.DualStreamEnabled = update.DualStreamEnabled
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			msg, err := deps.Client.UpdateConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to update recorder config: %s", recorder.Describe(err))
			}

			term := deps.terminal()
			term.Success(msg)
			term.Config(&cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&update.RTSPURL1, "rtsp-url1", "", "RTSP URL of channel 1")
	cmd.Flags().StringVar(&update.RTSPURL2, "rtsp-url2", "", "RTSP URL of channel 2")
	cmd.Flags().StringVar(&update.SavePath1, "save-path1", "", "save directory of channel 1")
	cmd.Flags().StringVar(&update.SavePath2, "save-path2", "", "save directory of channel 2")
	cmd.Flags().IntVar(&update.SegmentTime, "segment-time", 0, "segment length in seconds (60-3600)")
	cmd.Flags().BoolVar(&update.DualStreamEnabled, "dual-stream", false, "record both channels")
	return cmd
}
