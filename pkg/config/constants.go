package config

const (
	envPrefix = "WARMPAWS"

	// PlatformName tags payment intents so webhook traffic from other
	// products sharing the Stripe account can be filtered out.
	PlatformName = "warmpaws"
)
