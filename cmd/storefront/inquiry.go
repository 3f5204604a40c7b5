package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dekoratoriai/storefront/internal/notify/inquirylog"
	inquirysqlite "github.com/dekoratoriai/storefront/internal/notify/inquirylog/sqlite"
)

var inquiryHistory bool

var inquiryCmd = &cobra.Command{
	Use:   "inquiry <id>",
	Short: "Show the delivery state of an appointment inquiry",
	Long: `Show the latest entry of an appointment inquiry from the inquiry log.
With --history every recorded transition is printed, oldest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runInquiry,
}

func init() {
	inquiryCmd.Flags().BoolVar(&inquiryHistory, "history", false, "print every transition")
	rootCmd.AddCommand(inquiryCmd)
}

func runInquiry(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.InquiryLogPath == "" {
		return errors.New("inquiry log is disabled (inquiry_log_path is empty)")
	}

	repo, err := inquirysqlite.Open(cfg.InquiryLogPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	return printInquiry(cmd.Context(), cmd.OutOrStdout(), repo, args[0], inquiryHistory)
}

type inquiryReader interface {
	History(ctx context.Context, inquiryID string) ([]inquirylog.Entry, error)
	Latest(ctx context.Context, inquiryID string) (*inquirylog.Entry, error)
}

func printInquiry(ctx context.Context, out io.Writer, repo inquiryReader, id string, history bool) error {
	var entries []inquirylog.Entry
	if history {
		all, err := repo.History(ctx, id)
		if err != nil {
			return err
		}
		entries = all
	} else {
		latest, err := repo.Latest(ctx, id)
		if err != nil {
			return err
		}
		entries = []inquirylog.Entry{*latest}
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UPDATED\tSTATUS\tSTEP\tTRACE\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.UpdatedAt.Format(time.RFC3339), e.Status, orDash(e.Step), orDash(e.TraceID), e.Error)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
