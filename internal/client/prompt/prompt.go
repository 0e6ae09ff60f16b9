// Package prompt reads console input line by line and turns it into API
// payloads. When editing, an empty answer keeps the current value.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// clearMarker removes an optional value.
const clearMarker = "-"

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	lines <-chan string
	ctx   context.Context
	out   io.Writer
	now   func() time.Time
}

// New returns a Prompter over in and out. Input is read by a background
// goroutine that stops at the end of in.
func New(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return &Prompter{lines: lines, ctx: context.Background(), out: out, now: time.Now}
}

// WithContext returns a Prompter sharing p's input whose reads give up
// once ctx is done.
func (p *Prompter) WithContext(ctx context.Context) *Prompter {
	c := *p
	c.ctx = ctx
	return &c
}

// Line prints label and returns the next trimmed line. ok is false once
// input is exhausted or the context of p is done.
func (p *Prompter) Line(label string) (line string, ok bool) {
	fmt.Fprint(p.out, label)
	select {
	case line, ok = <-p.lines:
		return strings.TrimSpace(line), ok
	case <-p.ctx.Done():
		return "", false
	}
}

// Login asks for credentials.
func (p *Prompter) Login() models.Login {
	email, _ := p.Line("Email: ")
	password, _ := p.Line("Password: ")
	return models.Login{Email: email, Password: password}
}

// PasswordUpdate asks for the old and the new password.
func (p *Prompter) PasswordUpdate() models.PasswordUpdate {
	oldPass, _ := p.Line("Old password: ")
	newPass, _ := p.Line("New password: ")
	return models.PasswordUpdate{OldPass: oldPass, NewPass: newPass}
}

// DeviceHard asks for every field of a hardware type, starting from cur.
func (p *Prompter) DeviceHard(cur models.DeviceHardInput) (models.DeviceHardInput, error) {
	var err error
	out := cur
	out.HardVersion = p.text("Hardware version", cur.HardVersion)
	out.Name = p.text("Name", cur.Name)

	category := p.text("Category (Lock/Box)", string(cur.Category))
	switch strings.ToLower(category) {
	case "lock", "":
		out.Category = models.CategoryLock
	case "box":
		out.Category = models.CategoryBox
	default:
		return cur, fmt.Errorf("unknown category %q", category)
	}

	if out.HasBLE, err = p.flag("Has BLE", cur.HasBLE); err != nil {
		return cur, err
	}
	if out.HasFinger, err = p.flag("Has fingerprint", cur.HasFinger); err != nil {
		return cur, err
	}
	if out.HasSTM32, err = p.flag("Has STM32", cur.HasSTM32); err != nil {
		return cur, err
	}
	out.Desc = p.text("Description", cur.Desc)
	return out, nil
}

// DeviceSoft asks for the name of a software type.
func (p *Prompter) DeviceSoft(cur models.DeviceSoftInput) models.DeviceSoftInput {
	return models.DeviceSoftInput{Name: p.text("Name", cur.Name)}
}

// Firm asks for every field of a firmware release, starting from cur. A
// zero update time is replaced by the current time.
func (p *Prompter) Firm(cur models.FirmInput) (models.FirmInput, error) {
	var err error
	out := cur
	if out.HardVersion, err = p.number("Hardware type id", cur.HardVersion); err != nil {
		return cur, err
	}
	out.VersionName = p.text("Version name", cur.VersionName)
	out.VersionFormat = p.text("Version format", cur.VersionFormat)
	if out.VersionType, err = p.number("Version type", cur.VersionType); err != nil {
		return cur, err
	}
	if out.FingerLevel, err = p.number("Finger level", cur.FingerLevel); err != nil {
		return cur, err
	}
	out.URL = p.text("Download URL", cur.URL)
	out.Desc = p.text("Description", cur.Desc)
	out.DesEn = p.text("Description (en)", cur.DesEn)
	out.DesKo = p.text("Description (ko)", cur.DesKo)
	out.DesSp = p.text("Description (sp)", cur.DesSp)

	ts, err := p.number("Update time (unix)", int(cur.UpdateTime))
	if err != nil {
		return cur, err
	}
	out.UpdateTime = int64(ts)
	if out.UpdateTime == 0 {
		out.UpdateTime = p.now().Unix()
	}

	if out.RelyVersionType, err = p.optionalNumber("Depends on version type", cur.RelyVersionType); err != nil {
		return cur, err
	}
	out.Min = p.optionalText("Min version", cur.Min)
	out.Max = p.optionalText("Max version", cur.Max)
	return out, nil
}

func (p *Prompter) text(label, cur string) string {
	line, _ := p.Line(fmt.Sprintf("%s [%s]: ", label, cur))
	if line == "" {
		return cur
	}
	return line
}

func (p *Prompter) number(label string, cur int) (int, error) {
	line, _ := p.Line(fmt.Sprintf("%s [%d]: ", label, cur))
	if line == "" {
		return cur, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return cur, fmt.Errorf("%s: %q is not a number", label, line)
	}
	return n, nil
}

func (p *Prompter) flag(label string, cur bool) (bool, error) {
	def := "n"
	if cur {
		def = "y"
	}
	line, _ := p.Line(fmt.Sprintf("%s (y/n) [%s]: ", label, def))
	switch strings.ToLower(line) {
	case "":
		return cur, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return cur, fmt.Errorf("%s: answer y or n, got %q", label, line)
}

func (p *Prompter) optionalText(label string, cur *string) *string {
	shown := ""
	if cur != nil {
		shown = *cur
	}
	line, _ := p.Line(fmt.Sprintf("%s [%s] (%s clears): ", label, shown, clearMarker))
	switch line {
	case "":
		return cur
	case clearMarker:
		return nil
	}
	return &line
}

func (p *Prompter) optionalNumber(label string, cur *int) (*int, error) {
	shown := ""
	if cur != nil {
		shown = strconv.Itoa(*cur)
	}
	line, _ := p.Line(fmt.Sprintf("%s [%s] (%s clears): ", label, shown, clearMarker))
	switch line {
	case "":
		return cur, nil
	case clearMarker:
		return nil, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return cur, fmt.Errorf("%s: %q is not a number", label, line)
	}
	return &n, nil
}
