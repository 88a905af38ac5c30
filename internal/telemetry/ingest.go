// Package telemetry ingests machine-reported odometer readings from an MQTT
// feed and applies them to stored vehicles.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/okaradag/garagelog/internal/db"
	"github.com/okaradag/garagelog/internal/models"
)

const (
	connectTimeout = 10 * time.Second
	applyTimeout   = 5 * time.Second
)

// Ingestor subscribes to an odometer topic and advances vehicle odometers
// from the readings. The store only accepts forward movement, so replayed
// and out-of-order messages fall through harmlessly.
type Ingestor struct {
	vehicles db.VehicleCollection
	logger   *log.Logger
	client   mqtt.Client
}

// NewIngestor creates an odometer ingestor over the given vehicle store.
func NewIngestor(vehicles db.VehicleCollection, logger *log.Logger) *Ingestor {
	return &Ingestor{
		vehicles: vehicles,
		logger:   logger,
	}
}

// Start connects to the broker and subscribes to the topic. It returns once
// the subscription is live; messages are handled on the client's goroutines.
func (i *Ingestor) Start(broker, topic string) error {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("garagelog-ingest-%d", time.Now().UnixNano())).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	opts.OnConnect = func(mqtt.Client) {
		i.logger.WithField("broker", broker).Info("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.WithError(err).Warn("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect error: %w", token.Error())
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		i.HandlePayload(msg.Payload())
	}
	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return fmt.Errorf("mqtt subscribe error: %w", token.Error())
	}

	i.client = client
	i.logger.WithField("topic", topic).Info("odometer feed subscribed")
	return nil
}

// Stop disconnects from the broker. Safe to call when Start never ran.
func (i *Ingestor) Stop() {
	if i.client != nil {
		i.client.Disconnect(250)
	}
}

// HandlePayload applies one odometer reading. Malformed payloads, unknown
// vehicles, and stale readings are logged and dropped; nothing a device
// publishes can error the feed out.
func (i *Ingestor) HandlePayload(payload []byte) {
	var reading models.OdometerReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		i.logger.WithError(err).Warn("dropping malformed odometer payload")
		return
	}
	if reading.VehicleID == "" || reading.Mileage <= 0 {
		i.logger.WithFields(log.Fields{
			"vehicle_id": reading.VehicleID,
			"mileage":    reading.Mileage,
		}).Warn("dropping incomplete odometer reading")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	applied, err := i.vehicles.AdvanceVehicleMileage(ctx, reading.VehicleID, reading.Mileage)
	fields := log.Fields{
		"vehicle_id": reading.VehicleID,
		"mileage":    reading.Mileage,
	}
	switch {
	case errors.Is(err, db.ErrInvalidID):
		i.logger.WithFields(fields).Warn("dropping reading with malformed vehicle id")
	case err != nil:
		i.logger.WithFields(fields).WithError(err).Error("failed to apply odometer reading")
	case applied:
		i.logger.WithFields(fields).Info("odometer reading applied")
	default:
		// Stale reading or a vehicle this deployment has never seen
		i.logger.WithFields(fields).Debug("odometer reading not applied")
	}
}
