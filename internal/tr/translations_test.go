package tr

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"serverhub/internal/types"
)

func TestNewTranslatorUnknownDefault(t *testing.T) {
	_, err := NewTranslator("de")
	assert.ErrorIs(t, err, types.ErrUnknownLocale)

	_, err = NewTranslator("???")
	assert.ErrorIs(t, err, types.ErrUnknownLocale)
}

func TestMatch(t *testing.T) {
	tr, err := NewTranslator("ru")
	require.NoError(t, err)
	assert.Equal(t, language.Russian, tr.Default())

	tests := []struct {
		name  string
		prefs []string
		want  language.Tag
	}{
		{name: "no preference", prefs: nil, want: language.Russian},
		{name: "empty header", prefs: []string{""}, want: language.Russian},
		{name: "english header", prefs: []string{"en-GB,en;q=0.9"}, want: language.English},
		{name: "russian region", prefs: []string{"ru-RU"}, want: language.Russian},
		{name: "unsupported falls back", prefs: []string{"ja"}, want: language.Russian},
		{name: "query wins over header", prefs: []string{"en", "ru-RU,ru;q=0.9"}, want: language.English},
		{name: "invalid query skipped", prefs: []string{"!!", "en-US"}, want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestLocalizerTranslates(t *testing.T) {
	tr, err := NewTranslator("ru")
	require.NoError(t, err)

	ru := tr.Localizer()
	assert.Equal(t, "ПОДКЛЮЧИТЬСЯ", ru.T(ActionConnect))
	assert.Equal(t, "НЕДОСТУПЕН", ru.T(ActionUnavailable))
	assert.Equal(t, "Игроков онлайн", ru.T(StatPlayers))

	en := tr.Localizer("en")
	assert.Equal(t, language.English, en.Tag)
	assert.Equal(t, "CONNECT", en.T(ActionConnect))
	assert.Equal(t, "OUR SERVERS", en.T(ServersHeading))
}

func TestEveryMessageHasTranslations(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	for _, lang := range []string{"en", "ru"} {
		loc := tr.Localizer(lang)
		for _, msg := range allMessages() {
			s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: msg.ID})
			require.NoError(t, err, "%s/%s", lang, msg.ID)
			assert.NotEmpty(t, s)
		}
	}
}

func allMessages() []*i18n.Message {
	return []*i18n.Message{
		HeroTagline, StatPlayers, StatServers, StatSupport, ServersHeading,
		LabelMode, LabelPlayers, LabelVersion, StatusOnline, StatusOffline,
		ActionConnect, ActionUnavailable, ActionCopy,
		CTATitle, CTAText, CTAButton,
	}
}
