package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/resep-nusantara/internal/metrics"
	"github.com/pageza/resep-nusantara/internal/models"
)

// Share methods reported in results
const (
	MethodNative = "native"
	MethodPanel  = "panel"
)

// CopiedResetDelay is how long the copied indicator stays on
const CopiedResetDelay = 2 * time.Second

// ShareTarget is a social network share intent
type ShareTarget struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ShareLink is everything needed to share one recipe
type ShareLink struct {
	URL     string        `json:"url"`
	Title   string        `json:"title"`
	Text    string        `json:"text"`
	Image   string        `json:"image,omitempty"`
	Targets []ShareTarget `json:"targets"`
}

// Target returns the share target with the given name, ignoring case
func (l ShareLink) Target(name string) (ShareTarget, bool) {
	for _, t := range l.Targets {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return ShareTarget{}, false
}

// BuildShareLink builds the canonical link of recipe under origin
func BuildShareLink(origin string, recipe models.Recipe) ShareLink {
	shareURL := strings.TrimRight(origin, "/") + "/recipe/" + strconv.Itoa(recipe.ID)
	text := fmt.Sprintf("Cek resep %s di Resep Nusantara!", recipe.Name)

	return ShareLink{
		URL:   shareURL,
		Title: recipe.Name,
		Text:  text,
		Image: recipe.ImageURL,
		Targets: []ShareTarget{
			{Name: "WhatsApp", URL: "https://wa.me/?text=" + url.QueryEscape(text+" "+shareURL)},
			{Name: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(shareURL)},
			{Name: "Twitter", URL: "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) + "&url=" + url.QueryEscape(shareURL)},
		},
	}
}

// Sharer is a native share capability. It returns ErrCapabilityUnsupported
// when the platform does not offer it.
type Sharer interface {
	Name() string
	Share(ctx context.Context, link ShareLink) error
}

// Copier is a way of putting text on the clipboard. It returns
// ErrCapabilityUnsupported when the platform does not offer it.
type Copier interface {
	Name() string
	Copy(ctx context.Context, text string) error
}

// ShareResult reports how a share request was handled
type ShareResult struct {
	Method string `json:"method"`
	// Via names the sharer that handled a native share
	Via       string    `json:"via,omitempty"`
	Cancelled bool      `json:"cancelled"`
	Link      ShareLink `json:"link"`
}

// CopyResult reports a copy-link attempt
type CopyResult struct {
	Copied  bool      `json:"copied"`
	Method  string    `json:"method,omitempty"`
	ResetAt time.Time `json:"reset_at"`
}

// ShareService runs share and copy requests against ordered capabilities
type ShareService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewShareService creates a new ShareService instance
func NewShareService() *ShareService {
	return &ShareService{
		logger: slog.Default().With(slog.String("component", "share")),
		now:    time.Now,
	}
}

// Share tries each sharer in order. The first one that does not report
// ErrCapabilityUnsupported handles the request, even if it fails. With no
// native sharer the share panel is used.
func (s *ShareService) Share(ctx context.Context, link ShareLink, sharers ...Sharer) ShareResult {
	for _, sh := range sharers {
		err := sh.Share(ctx, link)
		if errors.Is(err, ErrCapabilityUnsupported) {
			continue
		}

		result := ShareResult{Method: MethodNative, Via: sh.Name(), Link: link}
		if err != nil {
			// a dismissed share sheet is not an error for the user
			s.logger.Info("share cancelled or failed", slog.String("via", sh.Name()), slog.Any("error", err))
			result.Cancelled = true
		}
		metrics.ShareActions.WithLabelValues("share", MethodNative).Inc()
		return result
	}

	metrics.ShareActions.WithLabelValues("share", MethodPanel).Inc()
	return ShareResult{Method: MethodPanel, Link: link}
}

// CopyLink tries each copier in order until one succeeds. Failures are
// logged and never returned.
func (s *ShareService) CopyLink(ctx context.Context, link string, copiers ...Copier) CopyResult {
	for _, c := range copiers {
		err := c.Copy(ctx, link)
		if err == nil {
			metrics.ShareActions.WithLabelValues("copy", c.Name()).Inc()
			return CopyResult{Copied: true, Method: c.Name(), ResetAt: s.now().Add(CopiedResetDelay)}
		}
		if !errors.Is(err, ErrCapabilityUnsupported) {
			s.logger.Warn("copy failed, trying fallback", slog.String("method", c.Name()), slog.Any("error", err))
		}
	}

	metrics.ShareActions.WithLabelValues("copy", "none").Inc()
	return CopyResult{ResetAt: s.now()}
}

// clipboardCommands are tried in order
var clipboardCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// CommandClipboard copies through the first clipboard tool found on PATH
type CommandClipboard struct {
	lookPath func(string) (string, error)
}

// NewCommandClipboard creates a clipboard backed by system tools
func NewCommandClipboard() *CommandClipboard {
	return &CommandClipboard{lookPath: exec.LookPath}
}

func (c *CommandClipboard) Name() string { return "clipboard" }

// Copy pipes text into the clipboard tool
func (c *CommandClipboard) Copy(ctx context.Context, text string) error {
	for _, cmd := range clipboardCommands {
		bin, err := c.lookPath(cmd[0])
		if err != nil {
			continue
		}
		run := exec.CommandContext(ctx, bin, cmd[1:]...)
		run.Stdin = strings.NewReader(text)
		if out, err := run.CombinedOutput(); err != nil {
			return fmt.Errorf("%s failed: %w: %s", cmd[0], err, strings.TrimSpace(string(out)))
		}
		return nil
	}
	return ErrCapabilityUnsupported
}

// ManualCopy prints the link so the user can select and copy it
type ManualCopy struct {
	W io.Writer
}

func (m ManualCopy) Name() string { return "manual" }

// Copy writes text on its own line
func (m ManualCopy) Copy(ctx context.Context, text string) error {
	if m.W == nil {
		return ErrCapabilityUnsupported
	}
	_, err := fmt.Fprintf(m.W, "Salin tautan ini:\n%s\n", text)
	return err
}

// BrowserSharer opens a share target in the desktop browser
type BrowserSharer struct {
	// Target is the share target name, such as WhatsApp
	Target   string
	lookPath func(string) (string, error)
	start    func(ctx context.Context, bin, arg string) error
}

// NewBrowserSharer creates a sharer for the named target
func NewBrowserSharer(target string) *BrowserSharer {
	return &BrowserSharer{
		Target:   target,
		lookPath: exec.LookPath,
		start: func(ctx context.Context, bin, arg string) error {
			return exec.CommandContext(ctx, bin, arg).Start()
		},
	}
}

func (b *BrowserSharer) Name() string { return strings.ToLower(b.Target) }

// Share opens the target URL with open or xdg-open
func (b *BrowserSharer) Share(ctx context.Context, link ShareLink) error {
	target, ok := link.Target(b.Target)
	if !ok {
		return ErrCapabilityUnsupported
	}

	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	bin, err := b.lookPath(opener)
	if err != nil {
		return ErrCapabilityUnsupported
	}
	return b.start(ctx, bin, target.URL)
}
