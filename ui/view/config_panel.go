package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/viewfinder-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is a settings window editing the persisted configuration.
// Geometry and capture options take effect on the next start.
type ConfigPanel interface {
	OpenOrFocus()
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	win     *ToplevelWidget
	status  *LabelWidget
	widgets map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel()
	win.WmTitle("Settings")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)

	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(24))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("aspect", "Aspect ratios (9:16,3:4)", strings.Join(c.AspectRatios, ","))
	makeRow("outputDir", "Output directory", c.OutputDir)
	makeRow("jpegQuality", "JPEG quality", fmt.Sprintf("%d", c.JPEGQuality))
	makeRow("recordFPS", "Recording FPS", fmt.Sprintf("%d", c.RecordFPS))
	makeRow("maxFrames", "Max recording frames", fmt.Sprintf("%d", c.MaxRecordFrames))
	makeRow("longPress", "Long press (ms)", fmt.Sprintf("%d", c.LongPressMillis))
	makeRow("comment", "User comment", c.UserComment)
	makeRow("lat", "Mock latitude", fmt.Sprintf("%.6f", c.MockLatitude))
	makeRow("lng", "Mock longitude", fmt.Sprintf("%.6f", c.MockLongitude))
	makeRow("access", "Camera access (granted/denied/ask)", c.CameraAccess)
	makeRow("dark", "Dark mode (true/false)", fmt.Sprintf("%t", c.DarkMode))

	apply := win.Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(apply, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.status = win.Label(Txt("Changes apply on next start"), Anchor("w"))
	Grid(v.status, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

func (v *configPanel) close() {
	if v.win == nil {
		return
	}
	Destroy(v.win)
	v.win = nil
	v.status = nil
	v.widgets = make(map[string]*TextWidget)
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignString := func(id string, dst *string) {
		if s, ok := v.text(id); ok && s != "" {
			*dst = s
		}
	}
	if s, ok := v.text("aspect"); ok && s != "" {
		cfg.AspectRatios = splitList(s)
	}
	assignString("outputDir", &cfg.OutputDir)
	assignInt("jpegQuality", &cfg.JPEGQuality)
	assignInt("recordFPS", &cfg.RecordFPS)
	assignInt("maxFrames", &cfg.MaxRecordFrames)
	assignInt("longPress", &cfg.LongPressMillis)
	assignString("comment", &cfg.UserComment)
	assignFloat("lat", &cfg.MockLatitude)
	assignFloat("lng", &cfg.MockLongitude)
	assignString("access", &cfg.CameraAccess)
	if s, ok := v.text("dark"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.DarkMode = b
		}
	}
	if verr := cfg.Validate(); verr != nil {
		v.setStatus("Invalid: " + verr.Error())
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		v.setStatus("Save failed")
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	v.setStatus("Saved · restart to apply")
}

func (v *configPanel) setStatus(s string) {
	if v.status != nil {
		v.status.Configure(Txt(s))
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
