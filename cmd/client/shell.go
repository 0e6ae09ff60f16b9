package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atinyakov/FirmAdmin/internal/client/api"
	"github.com/atinyakov/FirmAdmin/internal/client/prompt"
	"github.com/atinyakov/FirmAdmin/internal/models"
)

const helpText = `Available commands:
  login                 sign in and keep the token for this session
  passwd                change the password of the signed in user
  hard                  list hardware types
  hard-add              add a hardware type
  hard-edit <id>        edit a hardware type
  soft                  list software types
  soft-add              add a software type
  soft-edit <id>        rename a software type
  info                  refresh and show both catalogs
  firms [deviceId]      list firmware, optionally for one hardware type
  firm-add              publish a firmware release
  firm-edit <id>        edit a firmware release
  firm-delete <id>      delete a firmware release
  upload <path>         upload a firmware file and print its URL
  help                  show this text
  exit                  leave the console`

// shell runs the interactive command loop over the API client.
type shell struct {
	api    *api.Client
	prompt *prompt.Prompter
	out    io.Writer
}

func newShell(client *api.Client, in io.Reader, out io.Writer) *shell {
	return &shell{api: client, prompt: prompt.New(in, out), out: out}
}

// run reads commands until exit, end of input or ctx is done. Pending
// prompts give up as soon as ctx is done.
func (s *shell) run(ctx context.Context) {
	s.prompt = s.prompt.WithContext(ctx)
	for ctx.Err() == nil {
		line, ok := s.prompt.Line("firmadmin> ")
		if !ok {
			fmt.Fprintln(s.out)
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		if err := s.exec(ctx, args[0], args[1:]); err != nil && ctx.Err() == nil {
			s.printErr(err)
		}
	}
}

func (s *shell) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "login":
		tok, err := s.api.Login(ctx, s.prompt.Login())
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Signed in as %s\n", tok.User.Name)
		return nil
	case "passwd":
		if err := s.ack(s.api.UpdatePass(ctx, s.prompt.PasswordUpdate())); err != nil {
			return err
		}
		// The server rejects every token issued before the change.
		s.api.Session().UpdateToken("")
		fmt.Fprintln(s.out, "Password changed, sign in again with 'login'")
		return nil
	case "hard":
		return s.show(s.api.ListDeviceHard(ctx))
	case "hard-add":
		in, err := s.prompt.DeviceHard(models.DeviceHardInput{})
		if err != nil {
			return err
		}
		return s.ack(s.api.AddDeviceHard(ctx, in))
	case "hard-edit":
		return s.editHard(ctx, args)
	case "soft":
		return s.show(s.api.ListDeviceSoft(ctx))
	case "soft-add":
		return s.ack(s.api.AddDeviceSoft(ctx, s.prompt.DeviceSoft(models.DeviceSoftInput{})))
	case "soft-edit":
		return s.editSoft(ctx, args)
	case "info":
		return s.show(s.api.FetchBaseInfo(ctx))
	case "firms":
		if len(args) == 0 {
			return s.show(s.api.ListFirms(ctx))
		}
		deviceID, err := parseID(args)
		if err != nil {
			return err
		}
		return s.show(s.api.ListFirmsForDevice(ctx, deviceID))
	case "firm-add":
		in, err := s.prompt.Firm(models.FirmInput{})
		if err != nil {
			return err
		}
		return s.ack(s.api.AddFirm(ctx, in))
	case "firm-edit":
		return s.editFirm(ctx, args)
	case "firm-delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return s.ack(s.api.DeleteFirm(ctx, models.Firm{ID: id}))
	case "upload":
		return s.upload(ctx, args)
	}
	return fmt.Errorf("unknown command %q, type 'help' for a list of commands", cmd)
}

// catalog returns the catalog snapshot of the session, fetching it first
// when there is none.
func (s *shell) catalog(ctx context.Context) (models.BaseInfo, error) {
	if info, ok := s.api.Session().BaseInfo(); ok {
		return info, nil
	}
	return s.api.FetchBaseInfo(ctx)
}

func (s *shell) editHard(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	info, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	for _, d := range info.Hard {
		if d.ID != id {
			continue
		}
		in, err := s.prompt.DeviceHard(d.DeviceHardInput)
		if err != nil {
			return err
		}
		if err := s.ack(s.api.UpdateDeviceHard(ctx, models.DeviceHard{ID: id, DeviceHardInput: in})); err != nil {
			return err
		}
		_, err = s.api.FetchBaseInfo(ctx)
		return err
	}
	return fmt.Errorf("hardware type %d not found, run 'info' to refresh", id)
}

func (s *shell) editSoft(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	info, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	for _, d := range info.Soft {
		if d.ID != id {
			continue
		}
		in := s.prompt.DeviceSoft(models.DeviceSoftInput{Name: d.Name})
		if err := s.ack(s.api.UpdateDeviceSoft(ctx, models.DeviceSoft{ID: id, Name: in.Name})); err != nil {
			return err
		}
		_, err = s.api.FetchBaseInfo(ctx)
		return err
	}
	return fmt.Errorf("software type %d not found, run 'info' to refresh", id)
}

func (s *shell) editFirm(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	firms, err := s.api.ListFirms(ctx)
	if err != nil {
		return err
	}
	for _, f := range firms {
		if f.ID != id {
			continue
		}
		in, err := s.prompt.Firm(f.FirmInput)
		if err != nil {
			return err
		}
		return s.ack(s.api.UpdateFirm(ctx, models.Firm{ID: id, FirmInput: in}))
	}
	return fmt.Errorf("firmware %d not found", id)
}

func (s *shell) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: upload <path>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	up, err := s.api.UploadFirmwareAsset(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, up.SecureURL)
	return nil
}

func (s *shell) ack(resp models.APIResponse, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, cmp.Or(resp.Message, "ok"))
	return nil
}

func (s *shell) show(v any, err error) error {
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(b))
	return nil
}

func (s *shell) printErr(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(s.out, "error (%d): %s\n", apiErr.Status, strings.TrimSpace(apiErr.Message))
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one numeric id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a numeric id", args[0])
	}
	return id, nil
}
