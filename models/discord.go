package models

import "time"

// SelfUser describes the authenticated account
type SelfUser struct {
	ID        string
	Tag       string
	CreatedAt time.Time
	AvatarURL string
	BannerURL string
}

// ChannelInfo describes a chat channel
type ChannelInfo struct {
	ID   string
	Name string
	Type string
}

// GuildInfo describes a guild and the bits of it the info commands print
type GuildInfo struct {
	ID          string
	Name        string
	MemberCount int
	OwnerID     string
	RoleNames   []string
	Emojis      []string
}
