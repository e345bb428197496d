package app

import (
	"context"
	"strings"

	"github.com/dshills/cmdbar/internal/completion"
	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/input/prompt"
)

// DialogBuilder describes a question asked on the status bar.
type DialogBuilder struct {
	message       string
	defaultAnswer string
	choices       []rune
	shortcuts     map[key.Key]string
	blocking      bool
	responder     prompt.AnswerFunc
}

// NewDialog starts a dialog showing message.
func NewDialog(message string) *DialogBuilder {
	return &DialogBuilder{message: message}
}

// Default prefills the entry.
func (b *DialogBuilder) Default(answer string) *DialogBuilder {
	b.defaultAnswer = answer
	return b
}

// Choices restricts the answer to one of the given characters, typed
// without the entry.
func (b *DialogBuilder) Choices(choices ...rune) *DialogBuilder {
	b.choices = append(b.choices, choices...)
	return b
}

// Shortcut makes k answer the question with answer.
func (b *DialogBuilder) Shortcut(k key.Key, answer string) *DialogBuilder {
	if b.shortcuts == nil {
		b.shortcuts = make(map[key.Key]string)
	}
	b.shortcuts[k] = answer
	return b
}

// Blocking makes the dialog wait for its answer.
func (b *DialogBuilder) Blocking() *DialogBuilder {
	b.blocking = true
	return b
}

// Responder receives the answer of a non-blocking dialog.
func (b *DialogBuilder) Responder(fn prompt.AnswerFunc) *DialogBuilder {
	b.responder = fn
	return b
}

// label returns the message with its choices, as in "Quit? (y/n)".
func (b *DialogBuilder) label() string {
	if len(b.choices) == 0 {
		return b.message
	}
	parts := make([]string, len(b.choices))
	for i, c := range b.choices {
		parts[i] = string(c)
	}
	return b.message + " (" + strings.Join(parts, "/") + ")"
}

func (b *DialogBuilder) options() []prompt.Option {
	opts := []prompt.Option{
		prompt.WithAnswer(b.responder),
		prompt.WithChoices(b.choices...),
		prompt.WithShortcuts(b.shortcuts),
	}
	if b.blocking {
		opts = append(opts, prompt.WithBlocking())
	}
	return opts
}

// ShowDialog asks the question described by b without waiting for the
// answer. It fails with prompt.ErrPending while another question is open.
func (a *App) ShowDialog(b *DialogBuilder) (*prompt.Request, error) {
	if b.blocking {
		return nil, NewOperationError("show", "dialog", errBlockingDialog)
	}
	return a.ask(b, mode.Input)
}

func (a *App) ask(b *DialogBuilder, m mode.Mode) (*prompt.Request, error) {
	req, err := a.prompts.Request(b.options()...)
	if err != nil {
		return nil, err
	}
	a.log.WithField("request", req.ID).Debug("question %q", b.message)

	a.modes.ClearShortcut()
	a.modes.Enter(m)
	a.surfaces.Completion.Hide()
	a.surfaces.Status.SetMessage(MessageQuestion, b.label())

	if len(b.choices) > 0 {
		a.surfaces.Entry.Hide()
		return req, nil
	}
	a.surfaces.Completion.SetCompleter(completion.NoneID, "")
	a.surfaces.Entry.SetText(b.defaultAnswer)
	a.surfaces.Entry.Show()
	return req, nil
}

// Question asks a question answered with one of choices.
func (a *App) Question(message string, choices []rune, fn prompt.AnswerFunc) error {
	_, err := a.ShowDialog(NewDialog(message).Choices(choices...).Responder(fn))
	return err
}

// Input asks for a line of text, prefilled with defaultAnswer.
func (a *App) Input(message, defaultAnswer string, fn prompt.AnswerFunc) error {
	_, err := a.ShowDialog(NewDialog(message).Default(defaultAnswer).Responder(fn))
	return err
}

// YesNoQuestion asks a y/n question. fn receives false when the question
// is cancelled.
func (a *App) YesNoQuestion(message string, fn func(yes bool)) error {
	return a.Question(message, []rune{'y', 'n'}, func(answer string, ok bool) {
		fn(ok && answer == "y")
	})
}

// BlockingCustomDialog asks the question described by b and runs the
// event loop until it is answered. ok is false when the question was
// cancelled, the window closed or ctx ended; err tells the last two apart.
func (a *App) BlockingCustomDialog(ctx context.Context, b *DialogBuilder) (answer string, ok bool, err error) {
	b.blocking = true
	req, err := a.ask(b, mode.BlockingInput)
	if err != nil {
		return "", false, err
	}

	for !req.Done() {
		if err = ctx.Err(); err != nil {
			break
		}
		if a.closed || !a.surfaces.Loop.Step(ctx) {
			err = ErrWindowClosed
			break
		}
	}
	if !req.Done() {
		a.prompts.Cancel(req.ID)
	}

	if a.modes.Current() == mode.BlockingInput {
		a.modes.ReturnToNormal()
		a.reset()
	}

	answer, ok = req.Answer()
	if a.closed && err == nil && !ok {
		err = ErrWindowClosed
	}
	return answer, ok, err
}

// BlockingInput asks for a line of text and waits for it.
func (a *App) BlockingInput(ctx context.Context, message, defaultAnswer string) (string, bool, error) {
	return a.BlockingCustomDialog(ctx, NewDialog(message).Default(defaultAnswer))
}

// BlockingQuestion asks a question answered with one of choices and waits
// for it.
func (a *App) BlockingQuestion(ctx context.Context, message string, choices []rune) (string, bool, error) {
	return a.BlockingCustomDialog(ctx, NewDialog(message).Choices(choices...))
}

// BlockingYesNo asks a y/n question and waits for it.
func (a *App) BlockingYesNo(ctx context.Context, message string) (bool, error) {
	answer, ok, err := a.BlockingQuestion(ctx, message, []rune{'y', 'n'})
	return ok && answer == "y", err
}

// setDialogAnswer answers the pending question with a choice.
func (a *App) setDialogAnswer(answer string) {
	if a.modes.Current() == mode.BlockingInput {
		a.prompts.Deliver(answer, true)
		return
	}
	a.modes.ReturnToNormal()
	a.reset()
	a.prompts.Deliver(answer, true)
}
