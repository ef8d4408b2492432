package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/export"
	"github.com/suchimauz/clinic-slot-planner/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/services/slot_generator_service"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "slotctl",
		Short:        "Offline appointment slot tools",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(timeCmd())

	return rootCmd
}

// newOfflineService собирает сервис без бэкенда и кэша, доступны только локальные операции
func newOfflineService() (*slot_generator_service.SlotGeneratorService, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewZapLoggerFrom(zap.NewNop())
	return slot_generator_service.NewSlotGeneratorService(cfg, nil, nil, export.NewSlotExporter(cfg, log), log), nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Preview slots for a working window",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := slotRequestFromFlags(cmd)
			if err != nil {
				return err
			}

			service, err := newOfflineService()
			if err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			if outPath != "" {
				return exportSlots(cmd, service, req, outPath)
			}

			slots, err := service.PreviewSlots(cmd.Context(), req)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(slots)
			}
			return printSlots(cmd.OutOrStdout(), slots)
		},
	}

	cmd.Flags().String("date", "", "First date, YYYY-MM-DD")
	cmd.Flags().String("start", "09:00", "Window start, HH:MM")
	cmd.Flags().String("end", "17:00", "Window end, HH:MM")
	cmd.Flags().Int("duration", 30, "Slot duration in minutes")
	cmd.Flags().String("recurrence", string(domain.RecurrenceNone), "none, daily or weekly")
	cmd.Flags().Int("horizon", 0, "Recurrence horizon in days, 0 for the configured default")
	cmd.Flags().Bool("json", false, "Print slots as JSON")
	cmd.Flags().String("out", "", "Write slots to a .xlsx or .ics file instead of printing")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func slotRequestFromFlags(cmd *cobra.Command) (domain.SlotRequest, error) {
	dateStr, _ := cmd.Flags().GetString("date")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	duration, _ := cmd.Flags().GetInt("duration")
	recurrence, _ := cmd.Flags().GetString("recurrence")
	horizon, _ := cmd.Flags().GetInt("horizon")

	date, err := json_types.ParseDate(dateStr)
	if err != nil {
		return domain.SlotRequest{}, err
	}
	start, err := json_types.ParseTime(startStr)
	if err != nil {
		return domain.SlotRequest{}, err
	}
	end, err := json_types.ParseTime(endStr)
	if err != nil {
		return domain.SlotRequest{}, err
	}

	return domain.SlotRequest{
		Date:                date,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
		Recurrence:          domain.Recurrence(strings.ToLower(recurrence)),
		HorizonDays:         horizon,
	}, nil
}

func exportSlots(cmd *cobra.Command, service *slot_generator_service.SlotGeneratorService, req domain.SlotRequest, outPath string) error {
	format := domain.ExportFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), "."))

	data, err := service.ExportSlots(cmd.Context(), req, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(data), outPath)
	return nil
}

func printSlots(w io.Writer, slots []domain.Slot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTART\tLABEL\tMINUTES\tSTATUS")
	for _, slot := range slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", slot.Date, slot.Time, slot.Time.Format12h(), slot.DurationMinutes, slot.Status)
	}
	fmt.Fprintf(tw, "\n%d slots\n", len(slots))
	return tw.Flush()
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar YEAR MONTH",
		Short: "Print the Sunday-first month grid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			cells, err := slot_generator_service.BuildMonthGrid(year, time.Month(month))
			if err != nil {
				return err
			}
			return printMonthGrid(cmd.OutOrStdout(), year, time.Month(month), cells)
		},
	}
}

// Дни соседних месяцев выводятся в скобках
func printMonthGrid(w io.Writer, year int, month time.Month, cells []domain.CalendarCell) error {
	fmt.Fprintf(w, "%s %d\n", month, year)

	tw := tabwriter.NewWriter(w, 4, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Su\tMo\tTu\tWe\tTh\tFr\tSa\t")
	for i, cell := range cells {
		if cell.IsCurrentMonth {
			fmt.Fprintf(tw, "%d\t", cell.Day)
		} else {
			fmt.Fprintf(tw, "(%d)\t", cell.Day)
		}
		if (i+1)%domain.CalendarGridColumns == 0 {
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}

func timeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Convert between 24-hour and 12-hour labels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "format HH:MM",
		Short: "Convert 24-hour time to a 12-hour label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := slot_generator_service.FormatTimeSlot(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "parse \"H:MM AM\"",
		Short: "Convert a 12-hour label to 24-hour time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			time24h, err := slot_generator_service.ParseTimeSlot12h(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), time24h)
			return nil
		},
	})

	return cmd
}
