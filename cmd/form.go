package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/CorrelAid/student_payment_form/forms"
	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/CorrelAid/student_payment_form/prompt"
	"github.com/CorrelAid/student_payment_form/submission"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill in and submit student payment forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := inits.LoadConfig()
		applyFormFlags(cmd, cfg)
		qrPNG, _ := cmd.Flags().GetString("qr-png")
		return runForm(cmd.Context(), cfg, qrPNG)
	},
}

func init() {
	rootCmd.AddCommand(formCmd)

	formCmd.Flags().String("endpoint", "", "Add-student URL (default $STUDENT_API_URL)")
	formCmd.Flags().Bool("gate", true, "Refuse to send records that fail validation (default $FORM_GATE_ON_VALIDITY)")
	formCmd.Flags().String("payment-uri", "", "Payment URI shown as a QR code (default $PAYMENT_URI)")
	formCmd.Flags().String("qr-png", "", "Also write the payment QR code to this PNG file")
}

// applyFormFlags lets explicitly set flags win over the environment.
func applyFormFlags(cmd *cobra.Command, cfg *inits.Config) {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.StudentAPIURL, _ = flags.GetString("endpoint")
	}
	if flags.Changed("gate") {
		cfg.GateOnValidity, _ = flags.GetBool("gate")
	}
	if flags.Changed("payment-uri") {
		cfg.PaymentURI, _ = flags.GetString("payment-uri")
	}
}

func runForm(parent context.Context, cfg *inits.Config, qrPNG string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	qr, err := paymentQR(cfg.PaymentURI)
	if err != nil {
		return err
	}
	if qrPNG != "" && cfg.PaymentURI != "" {
		if err := prompt.WriteQRPNG(cfg.PaymentURI, qrPNG); err != nil {
			return fmt.Errorf("write payment QR code: %w", err)
		}
		log.Printf("Wrote payment QR code: path=%s", qrPNG)
	}

	log.Printf("Submitting to %s (gate=%t)", cfg.StudentAPIURL, cfg.GateOnValidity)

	holder := forms.New()
	coordinator := submission.NewCoordinator(holder, submission.NewClient(cfg.StudentAPIURL, nil), cfg.GateOnValidity)

	err = prompt.New(os.Stdin, os.Stdout, holder, coordinator, qr).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Printf("Interrupted")
		return nil
	}
	return err
}

// paymentQR renders the QR code shown above the UTR prompt. No URI means no
// QR code.
func paymentQR(uri string) (string, error) {
	if uri == "" {
		return "", nil
	}
	qr, err := prompt.RenderQR(uri)
	if err != nil {
		return "", fmt.Errorf("render payment QR code: %w", err)
	}
	return qr, nil
}
