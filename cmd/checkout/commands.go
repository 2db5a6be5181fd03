package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vypay/internal/checkout"
	"vypay/internal/orders"
	"vypay/internal/payments"
)

func methodsCmd(opts *options) *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List payment methods offered by the proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()

			methods, err := client.Methods(cmd.Context())
			if err != nil {
				return fmt.Errorf("list methods: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if amount > 0 {
				fmt.Fprintln(w, "ID\tNAME\tFEE\tTOTAL")
			} else {
				fmt.Fprintln(w, "ID\tNAME\tCATEGORY")
			}

			for _, m := range methods {
				if amount <= 0 {
					fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.Category)
					continue
				}

				est, err := client.FeeEstimate(cmd.Context(), m.ID, amount)
				if err != nil {
					return fmt.Errorf("fee estimate for %s: %w", m.ID, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, payments.FormatRupiah(est.Fee), payments.FormatRupiah(est.Total))
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Show fee estimates for this amount")

	return cmd
}

func payCmd(opts *options) *cobra.Command {
	var (
		method       string
		amount       string
		pollInterval time.Duration
		wait         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Create a transaction and wait for it to complete",
		Long: `Create a transaction with the chosen method, print its payment details and
poll until the payment completes. Ctrl-C cancels the transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			defer logger.Sync()

			ids, err := orders.NewOrderNumberGenerator(orders.DefaultPrefix, "vypay")
			if err != nil {
				return err
			}

			presenter := newTerminalPresenter(cmd.OutOrStdout())
			ctl, err := checkout.New(checkout.Config{
				Proxy:        opts.client(),
				Presenter:    presenter,
				OrderIDs:     ids,
				Credentials:  opts.credentials(),
				PollInterval: pollInterval,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			defer ctl.Close()

			if err := ctl.SelectMethod(method); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := ctl.CreateTransaction(ctx, amount); err != nil {
				if errors.Is(err, context.Canceled) {
					return errors.New("payment cancelled")
				}
				return err
			}

			return waitForCompletion(ctx, ctl, presenter, wait)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "qris", "Payment method id")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount in Rupiah")
	cmd.Flags().DurationVar(&pollInterval, "poll", checkout.DefaultPollInterval, "Status poll interval")
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Minute, "Give up and cancel after this long")
	cmd.MarkFlagRequired("amount")

	return cmd
}

// waitForCompletion blocks until the presenter sees completion, ctx ends or wait
// elapses. The last two cancel the live transaction.
func waitForCompletion(ctx context.Context, ctl *checkout.Controller, p *terminalPresenter, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-p.Done():
		return nil
	case <-ctx.Done():
		ctl.Cancel()
		return errors.New("payment cancelled")
	case <-timer.C:
		ctl.Cancel()
		return fmt.Errorf("payment not completed after %s", wait)
	}
}

func statusCmd(opts *options) *cobra.Command {
	var (
		orderID string
		amount  int64
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the status of a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := opts.credentials()
			status, err := opts.client().CheckStatus(cmd.Context(), payments.DetailRequest{
				Credentials: creds,
				OrderID:     orderID,
				Amount:      amount,
			})
			if err != nil {
				return fmt.Errorf("check status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order:  %s\n", orderID)
			fmt.Fprintf(out, "Amount: %s\n", payments.FormatRupiah(amount))
			fmt.Fprintf(out, "Status: %s\n", status.Status)
			if paid := status.CompletedAt.String(); paid != "" {
				fmt.Fprintf(out, "Paid:   %s\n", paid)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order-id", "", "Order id")
	cmd.Flags().Int64Var(&amount, "amount", 0, "Order amount")
	cmd.MarkFlagRequired("order-id")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func simulateCmd(opts *options) *cobra.Command {
	var (
		orderID string
		amount  int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a payment for a sandbox transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := opts.client().SimulatePayment(cmd.Context(), payments.SimulateRequest{
				Credentials: opts.credentials(),
				OrderID:     orderID,
				Amount:      amount,
			})
			if err != nil {
				return fmt.Errorf("simulate payment: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(raw)
		},
	}

	cmd.Flags().StringVar(&orderID, "order-id", "", "Order id")
	cmd.Flags().Int64Var(&amount, "amount", 0, "Order amount")
	cmd.MarkFlagRequired("order-id")
	cmd.MarkFlagRequired("amount")

	return cmd
}
