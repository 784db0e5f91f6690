package home

import (
	"embed"
	"html/template"
	"net/http"

	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

const templateName = "index.html"

//go:embed templates/index.html
var templates embed.FS

// button labels shown on the page. order comes from scribe.Actions
var actionLabels = map[scribe.Action]string{
	scribe.ActionExplain: "Explain",
	scribe.ActionTests:   "Tests",
	scribe.ActionDocs:    "Docstrings",
	scribe.ActionAudit:   "Audit",
	scribe.ActionReadme:  "README",
}

type actionButton struct {
	Action scribe.Action
	Label  string
}

type pageData struct {
	Model     string
	AIEnabled bool
	Actions   []actionButton
}

// parses the embedded page template; install with router.SetHTMLTemplate
func Template() *template.Template {
	return template.Must(template.ParseFS(templates, "templates/"+templateName))
}

// renders the single page UI
func Handler(dispatcher *scribe.Dispatcher) gin.HandlerFunc {
	buttons := make([]actionButton, 0, len(actionLabels))
	for _, action := range scribe.Actions() {
		buttons = append(buttons, actionButton{Action: action, Label: actionLabels[action]})
	}

	return func(c *gin.Context) {
		c.HTML(http.StatusOK, templateName, pageData{
			Model:     dispatcher.Model(),
			AIEnabled: dispatcher.AIEnabled(),
			Actions:   buttons,
		})
	}
}

func RegisterRoutes(router *gin.Engine, dispatcher *scribe.Dispatcher) {
	router.SetHTMLTemplate(Template())
	router.GET("/", Handler(dispatcher))
}
