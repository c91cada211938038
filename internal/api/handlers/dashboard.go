package handlers

import (
	"html/template"
	"net/http"

	"bess-dashboard/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the HTML dashboard page
type DashboardHandler struct {
	session *dashboard.Session
	tmpl    *template.Template
}

func NewDashboardHandler(session *dashboard.Session) *DashboardHandler {
	return &DashboardHandler{
		session: session,
		tmpl:    template.Must(template.New("dashboard").Parse(tmplDashboard)),
	}
}

type dashboardView struct {
	Batteries    []string
	Selected     string
	NewBatteries []string
	Mode         string
	Year         int
	// Tab is "single" or "all".
	Tab string
}

// Index handles GET /. ?battery= picks the battery, ?mode= the revenue metric
// and ?tab= the open tab. An unknown battery falls back to the default one.
func (h *DashboardHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.session.NewResources(ctx)
	if err != nil {
		respondErr(c, err)
		return
	}
	selected := c.Query("battery")
	if h.session.CheckResource(selected) != nil {
		selected = h.session.DefaultResource()
	}
	metric, ok := parseMode(c)
	if !ok {
		return
	}
	tab := "single"
	if c.Query("tab") == "all" {
		tab = "all"
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.tmpl.Execute(c.Writer, dashboardView{
		Batteries:    h.session.Resources(),
		Selected:     selected,
		NewBatteries: res.New,
		Mode:         string(metric),
		Year:         h.session.Year(),
		Tab:          tab,
	}); err != nil {
		_ = c.Error(err)
	}
}

const tmplDashboard = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>BESS dashboard</title>
<style>
body{font-family:sans-serif;margin:0;background:#fafafa;color:#222}
header{padding:12px 24px;background:#1f77b4;color:#fff}
.tabs{display:flex;gap:4px;padding:8px 24px 0;border-bottom:1px solid #ccc}
.tabs label{padding:6px 14px;border:1px solid #ccc;border-bottom:none;border-radius:4px 4px 0 0;cursor:pointer;background:#eee}
.tab{display:none;padding:16px 24px}
#t-single:checked ~ .tabs label[for=t-single],#t-all:checked ~ .tabs label[for=t-all]{background:#fff;font-weight:700}
#t-single:checked ~ #single,#t-all:checked ~ #all{display:block}
input[name=tab]{display:none}
img{max-width:100%;border:1px solid #ddd;background:#fff;margin:6px 0}
.note{font-style:italic;color:#555}
form{display:inline}
</style>
</head>
<body>
<header><h2>Battery energy storage: market analysis {{.Year}}</h2></header>
<input type="radio" name="tab" id="t-single"{{if eq .Tab "single"}} checked{{end}}>
<input type="radio" name="tab" id="t-all"{{if eq .Tab "all"}} checked{{end}}>
<div class="tabs"><label for="t-single">Single Battery</label><label for="t-all">Compare All Batteries</label></div>

<section class="tab" id="single">
<form method="get" action="/">
  <label>Select one of the {{len .Batteries}} batteries to analyze:
  <select name="battery" onchange="this.form.submit()">
  {{range .Batteries}}<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>{{end}}
  </select></label>
  <input type="hidden" name="mode" value="{{.Mode}}">
</form>
<p class="note">Note: All the batteries come online before the dataset starts{{if .NewBatteries}}, except for {{range $i, $b := .NewBatteries}}{{if $i}}, {{end}}{{$b}}{{end}}{{end}}.</p>
<h3>Battery Status</h3>
<img src="/charts/status/{{.Selected}}" alt="status timeline">
<h3>Battery Revenue</h3>
<img src="/charts/waterfall/{{.Selected}}" alt="revenue waterfall">
</section>

<section class="tab" id="all">
<h3>Analysis of the hourly price variation</h3>
<h4>Energy Price</h4>
<p>The first chart compares the median real-time energy price of each battery. The second shows how much the price varies between batteries hour by hour: the energy price differs across the nodes of the grid.</p>
<img src="/charts/energy-price" alt="energy price per battery">
<img src="/charts/variation/energy" alt="energy price variation">
<h4>Ancillary Services Price</h4>
<p>Ancillary service prices are cleared at the ISO level, so every battery sees the same price and the hourly variation is zero.</p>
<img src="/charts/variation/ancillary" alt="ancillary services price variation">
<hr>
<h3>Analysis of the yearly revenue</h3>
<form method="get" action="/">
  <input type="hidden" name="battery" value="{{.Selected}}">
  <input type="hidden" name="tab" value="all">
  <label>Mode:
  <select name="mode" onchange="this.form.submit()">
    <option value="total"{{if eq .Mode "total"}} selected{{end}}>$</option>
    <option value="per_mw"{{if eq .Mode "per_mw"}} selected{{end}}>$/MW</option>
  </select></label>
</form>
<img src="/charts/revenue?mode={{.Mode}}" alt="revenue per battery">
</section>
</body>
</html>
`
