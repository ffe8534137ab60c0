// Package prompt runs the payment form on a text terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/CorrelAid/student_payment_form/forms"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/validators"
)

const (
	SuccessMessage = "Form submitted successfully!"

	title = "Student Payment Form"
)

var labels = map[string]string{
	models.FieldName:         "Name",
	models.FieldCourseName:   "Course Name",
	models.FieldEmail:        "Email",
	models.FieldCollegeName:  "College Name",
	models.FieldMobileNumber: "Mobile Number (10 digits)",
	models.FieldUTR:          "UTR",
}

// inputFields are the fields a student types; studentId is assigned.
var inputFields = []string{
	models.FieldName,
	models.FieldCourseName,
	models.FieldEmail,
	models.FieldCollegeName,
	models.FieldMobileNumber,
	models.FieldUTR,
}

type Submitter interface {
	Submit(ctx context.Context) error
}

type Terminal struct {
	in        *bufio.Scanner
	out       io.Writer
	holder    *forms.Holder
	submitter Submitter
	qr        string

	mu   sync.Mutex
	last forms.Snapshot

	readOnce sync.Once
	lines    chan string
	readErr  error
}

// New returns a terminal front end for holder. qr is printed above the UTR
// prompt when non-empty.
func New(in io.Reader, out io.Writer, holder *forms.Holder, submitter Submitter, qr string) *Terminal {
	return &Terminal{
		in:        bufio.NewScanner(in),
		out:       out,
		holder:    holder,
		submitter: submitter,
		qr:        qr,
		last:      holder.Snapshot(),
		lines:     make(chan string),
	}
}

// Run collects and submits students until input ends or the user quits.
// Cancelling ctx interrupts a pending prompt and Run returns ctx.Err().
func (t *Terminal) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cancel := t.holder.Subscribe(t.render)
	defer cancel()

	t.readOnce.Do(func() { go t.readLines() })

	fmt.Fprintln(t.out, title)
	fmt.Fprintln(t.out, strings.Repeat("=", len(title)))

	for {
		quit, err := t.student(ctx)
		if errors.Is(err, io.EOF) || quit {
			fmt.Fprintln(t.out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// student edits and submits one record; it returns once the record is
// accepted or the user quits.
func (t *Terminal) student(ctx context.Context) (bool, error) {
	fmt.Fprintf(t.out, "\nStudent ID: %s\n", t.holder.Record().StudentID)

	for {
		if err := t.edit(ctx); err != nil {
			return false, err
		}

		answer, err := t.ask(ctx, "Submit? [Y/n/q] ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "q", "quit":
			return true, nil
		case "n", "no":
			continue
		}

		if err := ctx.Err(); err != nil {
			return false, err
		}
		err = t.submitter.Submit(ctx)
		if errors.Is(err, forms.ErrSubmissionInFlight) {
			fmt.Fprintln(t.out, "A submission is already in progress.")
			continue
		}

		if _, err := t.ask(ctx, "Press Enter to continue "); err != nil {
			return false, err
		}
		succeeded := t.holder.Snapshot().Succeeded
		t.holder.AcknowledgeFeedback()
		if succeeded {
			return false, nil
		}
		fmt.Fprintln(t.out, "Fix the form and submit again. Enter keeps the current value.")
	}
}

func (t *Terminal) edit(ctx context.Context) error {
	for _, field := range inputFields {
		if field == models.FieldUTR && t.qr != "" {
			fmt.Fprintln(t.out, "Scan the QR Code to Pay")
			fmt.Fprint(t.out, t.qr)
		}
		for {
			record := t.holder.Record()
			current, _ := record.Get(field)
			label := labels[field]
			if current != "" {
				label = fmt.Sprintf("%s [%s]", label, current)
			}
			value, err := t.ask(ctx, label+": ")
			if err != nil {
				return err
			}
			if value == "" {
				value = current
			}
			if value == "" {
				fmt.Fprintf(t.out, "  %s is required\n", labels[field])
				continue
			}
			if err := t.holder.UpdateField(field, value); err != nil {
				return err
			}
			if msg := validators.FieldMessage(field, value); msg != "" {
				fmt.Fprintf(t.out, "  %s\n", msg)
			}
			break
		}
	}
	return nil
}

// readLines feeds input lines to ask. It may stay blocked on the reader after
// Run returns; the lines channel is closed once input ends.
func (t *Terminal) readLines() {
	for t.in.Scan() {
		t.lines <- t.in.Text()
	}
	t.readErr = t.in.Err()
	close(t.lines)
}

func (t *Terminal) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, question)
	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			if t.readErr != nil {
				return "", t.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// render prints notifications as the form state changes.
func (t *Terminal) render(s forms.Snapshot) {
	t.mu.Lock()
	prev := t.last
	t.last = s
	t.mu.Unlock()

	if s.Phase == forms.PhaseSubmitting && prev.Phase != forms.PhaseSubmitting {
		fmt.Fprintln(t.out, "Submitting...")
	}
	if s.Succeeded && !prev.Succeeded {
		fmt.Fprintf(t.out, "[ok] %s\n", SuccessMessage)
	}
	if s.Error != "" && s.Error != prev.Error {
		fmt.Fprintf(t.out, "[error] %s\n", s.Error)
	}
}
