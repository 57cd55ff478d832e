package connectivity

import (
	"github.com/eclipse/paho.golang/paho"

	"wellbeing_station/internal/config"
)

func defaultMQTT() config.MQTT {
	return config.MQTT{Broker: "mqtt://127.0.0.1:1", BaseTopic: "desk"}
}

// pahoClientPlaceholder returns an unconnected client; only its identity is used.
func pahoClientPlaceholder() *paho.Client {
	return paho.NewClient(paho.ClientConfig{ClientID: "test"})
}
