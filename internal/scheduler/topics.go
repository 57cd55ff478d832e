package scheduler

import "strings"

// Topics are the MQTT topics the station publishes to.
type Topics struct {
	Temperature string
	Humidity    string
	Luminosity  string
	Distance    string
	Status      string
}

// NewTopics derives every topic from a common base such as "wellbeing/station".
func NewTopics(base string) Topics {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return Topics{
		Temperature: base + "/temperature",
		Humidity:    base + "/humidity",
		Luminosity:  base + "/luminosity",
		Distance:    base + "/distance",
		Status:      base + "/status",
	}
}
