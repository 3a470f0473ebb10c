package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"shortfactory/internal/dto"
	"shortfactory/internal/effects"
	"shortfactory/internal/response"
	"shortfactory/internal/template"
)

var transitionNames = map[template.TransitionKind]string{
	template.TransitionFadeConcat: "fade",
	template.TransitionCrossfade:  "crossfade",
	template.TransitionBlend:      "blend",
	template.TransitionWipe:       "wipe",
	template.TransitionCircle:     "circle",
}

// GetTemplates lists the registered styles for the gallery.
func (h *Handler) GetTemplates(c *gin.Context) {
	infos := lo.Map(template.StyleNames(), func(name string, _ int) dto.TemplateInfo {
		s, _ := template.StyleByName(name)
		return dto.TemplateInfo{
			Name:        s.Name,
			Transition:  transitionNames[s.Transition],
			Overlay:     string(s.OverlayStyle),
			TitleEffect: s.TitleEffect.String(),
			Effects: lo.Map(s.CaptionEffects, func(k effects.Kind, _ int) string {
				return k.String()
			}),
		}
	})
	response.Success(c, infos)
}
