package mailer

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"

	"github.com/hotend/giveaway-backend/config"
)

// Subject of the confirmation email.
const Subject = "Registrace do soutěže - Poslední Stream Roku 2025"

const htmlTemplate = `<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto;">
    <h2>Ahoj {{ name }}!</h2>
    <p>Tvoje registrace do soutěže proběhla úspěšně.</p>

    <div style="background: #161616; color: #fff; padding: 24px; border-radius: 8px; margin: 24px 0; text-align: center;">
        <p style="margin: 0 0 8px 0; font-size: 14px; opacity: 0.7;">Tvůj ověřovací kód</p>
        <p style="margin: 0; font-size: 32px; font-weight: bold; letter-spacing: 4px;">{{ code }}</p>
    </div>

    <p><strong>Jak to funguje:</strong></p>
    <ol>
        <li>Přijď na stream <strong>{{ stream_date }}</strong></li>
        <li>Pokud budeš vylosován/a, ozvu se v chatu</li>
        <li>Napiš do chatu svůj ověřovací kód</li>
        <li>Výhra je tvoje!</li>
    </ol>

    <p style="margin-top: 24px;">
        <a href="{{ stream_url }}" style="background: #000; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">
            Odkaz na stream
        </a>
    </p>

    <p style="margin-top: 32px; font-size: 14px; opacity: 0.6;">
        Hodně štěstí!<br>
        Pavel Tajduš / Hotend.cz
    </p>
</div>`

const textTemplate = `Ahoj {{ name }}!

Tvoje registrace do soutěže proběhla úspěšně.

Tvůj ověřovací kód: {{ code }}

Jak to funguje:
1. Přijď na stream {{ stream_date }}
2. Pokud budeš vylosován/a, ozvu se v chatu
3. Napiš do chatu svůj ověřovací kód
4. Výhra je tvoje!

Odkaz na stream: {{ stream_url }}

Hodně štěstí!
Pavel Tajduš / Hotend.cz`

// Templates renders the confirmation email bodies.
type Templates struct {
	engine  *liquid.Engine
	contest config.ContestConfig
}

// NewTemplates creates the template renderer with the contest details baked in.
func NewTemplates(contest config.ContestConfig) *Templates {
	return &Templates{engine: liquid.NewEngine(), contest: contest}
}

// RenderConfirmation produces the HTML and plain-text bodies for a
// participant's confirmation email.
func (t *Templates) RenderConfirmation(name, code string) (html, text string, err error) {
	bindings := liquid.Bindings{
		"name":        name,
		"code":        code,
		"stream_url":  t.contest.StreamURL,
		"stream_date": t.contest.StreamDate,
	}
	html, err = t.engine.ParseAndRenderString(htmlTemplate, bindings)
	if err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	text, err = t.engine.ParseAndRenderString(textTemplate, bindings)
	if err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	return strings.TrimSpace(html), strings.TrimSpace(text), nil
}
