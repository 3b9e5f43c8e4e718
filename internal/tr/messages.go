package tr

import "github.com/nicksnyder/go-i18n/v2/i18n"

// Page messages. Other holds the English default.
var (
	HeroTagline       = &i18n.Message{ID: "hero_tagline", Other: "Join the best gaming community"}
	StatPlayers       = &i18n.Message{ID: "stat_players", Other: "Players online"}
	StatServers       = &i18n.Message{ID: "stat_servers", Other: "Active servers"}
	StatSupport       = &i18n.Message{ID: "stat_support", Other: "Support"}
	ServersHeading    = &i18n.Message{ID: "servers_heading", Other: "OUR SERVERS"}
	LabelMode         = &i18n.Message{ID: "label_mode", Other: "Mode"}
	LabelPlayers      = &i18n.Message{ID: "label_players", Other: "Players:"}
	LabelVersion      = &i18n.Message{ID: "label_version", Other: "Version:"}
	StatusOnline      = &i18n.Message{ID: "status_online", Other: "ONLINE"}
	StatusOffline     = &i18n.Message{ID: "status_offline", Other: "OFFLINE"}
	ActionConnect     = &i18n.Message{ID: "action_connect", Other: "CONNECT"}
	ActionUnavailable = &i18n.Message{ID: "action_unavailable", Other: "UNAVAILABLE"}
	ActionCopy        = &i18n.Message{ID: "action_copy", Other: "Copy address"}
	CTATitle          = &i18n.Message{ID: "cta_title", Other: "Ready to start?"}
	CTAText           = &i18n.Message{ID: "cta_text", Other: "Copy the IP of any server and connect right now!"}
	CTAButton         = &i18n.Message{ID: "cta_button", Other: "JOIN THE COMMUNITY"}
)
