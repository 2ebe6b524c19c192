package config

import "time"

// Channels the daemon can talk to.
const (
	ChannelRCON    = "rcon"
	ChannelFixture = "fixture"
)

// ServiceName identifies the daemon in logs and telemetry.
const ServiceName = "ktowers-overlay"

const (
	defaultPort         = "4000"
	defaultPollInterval = time.Second
	defaultServiceName  = ServiceName
)
