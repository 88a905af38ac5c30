package models

import "time"

// OdometerReading is a machine-reported mileage sample, delivered over MQTT
// by telematics hardware or a phone integration. Readings only ever raise a
// vehicle's stored mileage; rollbacks are dropped at ingest.
type OdometerReading struct {
	VehicleID  string    `json:"vehicle_id"`
	Mileage    int64     `json:"mileage"`
	RecordedAt time.Time `json:"recorded_at"`
}
