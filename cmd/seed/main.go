// Seeds a running garagelog API with a demo account and a few vehicles
// carrying months of expense, fuel, and maintenance history. Point it at a
// dev server to get data worth looking at in the analytics endpoints.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/okaradag/garagelog/internal/models"
)

var authToken string

var catalog = []struct {
	Make  string
	Model string
	Year  int
	Price float64
	MPG   float64
}{
	{"Toyota", "Corolla", 2020, 21500, 33},
	{"Honda", "CR-V", 2019, 28400, 29},
	{"Ford", "F-150", 2018, 36900, 20},
	{"Subaru", "Outback", 2021, 29800, 28},
	{"Mazda", "CX-5", 2022, 27200, 27},
	{"Chevrolet", "Bolt", 2021, 31000, 0}, // electric, skipped for fuel history
}

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func postJSON(url string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return authorizedRequest(http.MethodPost, url, bytes.NewBuffer(data))
}

// authenticate registers the seed account, falling back to login when a
// previous run already created it.
func authenticate(apiURL, email, password string) (string, error) {
	register := models.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Demo",
		LastName:  "Driver",
	}
	resp, err := postJSON(apiURL+"/auth/register", register)
	if err != nil {
		return "", fmt.Errorf("failed to register: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		login := models.LoginRequest{Email: email, Password: password}
		loginResp, err := postJSON(apiURL+"/auth/login", login)
		if err != nil {
			return "", fmt.Errorf("failed to login: %w", err)
		}
		defer loginResp.Body.Close()
		if loginResp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("login failed with status: %d", loginResp.StatusCode)
		}
		resp = loginResp
	} else if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("registration failed with status: %d", resp.StatusCode)
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	return auth.Token, nil
}

func createVehicle(apiURL string, months int) (*models.Vehicle, float64, error) {
	pick := catalog[rand.Intn(len(catalog))]

	// Bought before the history window opens, with miles already on it
	purchaseDate := time.Now().AddDate(0, -(months + 6 + rand.Intn(18)), 0)
	purchasePrice := pick.Price
	startMileage := int64(8000 + rand.Intn(30000))

	vehicle := models.Vehicle{
		Make:          pick.Make,
		Model:         pick.Model,
		Year:          pick.Year,
		Mileage:       startMileage,
		Status:        models.VehicleActive,
		PurchaseDate:  &purchaseDate,
		PurchasePrice: &purchasePrice,
	}

	resp, err := postJSON(apiURL+"/vehicles", vehicle)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, 0, fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var created models.Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicle: %w", err)
	}

	log.WithFields(log.Fields{
		"vehicle_id": created.ID.Hex(),
		"make":       created.Make,
		"model":      created.Model,
		"year":       created.Year,
	}).Info("Created vehicle")

	return &created, pick.MPG, nil
}

// backfillHistory walks week by week from the start of the window to now,
// posting fill-ups as miles accumulate, oil changes every 5,000 miles, and
// monthly insurance expenses. Returns the final odometer reading.
func backfillHistory(apiURL string, vehicle *models.Vehicle, mpg float64, months int) int64 {
	mileage := vehicle.Mileage
	lastOilChange := mileage
	vehicleID := vehicle.ID.Hex()

	start := time.Now().AddDate(0, -months, 0)
	lastInsuranceMonth := ""

	for day := start; day.Before(time.Now()); day = day.AddDate(0, 0, 7) {
		weekMiles := int64(120 + rand.Intn(160))
		mileage += weekMiles

		if mpg > 0 {
			gallons := float64(weekMiles)/mpg + rand.Float64()*0.8
			price := 3.10 + rand.Float64()*0.80
			entry := models.FuelEntry{
				VehicleID:      vehicleID,
				Date:           day,
				Mileage:        mileage,
				Gallons:        round2(gallons),
				PricePerGallon: round2(price),
				FuelType:       models.FuelRegular,
			}
			post(apiURL+"/fuel", entry, "fuel entry")
		}

		if mileage-lastOilChange >= 5000 {
			cost := round2(65 + rand.Float64()*30)
			record := models.Maintenance{
				VehicleID: vehicleID,
				Type:      models.MaintenanceOilChange,
				Status:    models.MaintenanceCompleted,
				Date:      day,
				Mileage:   mileage,
				Cost:      &cost,
			}
			post(apiURL+"/maintenance", record, "maintenance record")

			expense := models.Expense{
				VehicleID:   vehicleID,
				Date:        day,
				Amount:      cost,
				Type:        models.ExpenseService,
				Category:    models.CategoryRoutine,
				Description: "Oil change",
				Mileage:     mileage,
			}
			post(apiURL+"/expenses", expense, "expense")
			lastOilChange = mileage
		}

		if month := day.Format("2006-01"); month != lastInsuranceMonth {
			expense := models.Expense{
				VehicleID:   vehicleID,
				Date:        day,
				Amount:      round2(95 + rand.Float64()*40),
				Type:        models.ExpenseInsurance,
				Category:    models.CategoryLegal,
				Description: "Monthly insurance premium",
				Mileage:     mileage,
			}
			post(apiURL+"/expenses", expense, "expense")
			lastInsuranceMonth = month
		}
	}

	// Bring the stored odometer up to where the history left off
	vehicle.Mileage = mileage
	data, err := json.Marshal(vehicle)
	if err != nil {
		log.WithError(err).Error("Failed to marshal vehicle update")
		return mileage
	}
	resp, err := authorizedRequest(http.MethodPut, apiURL+"/vehicles/"+vehicleID, bytes.NewBuffer(data))
	if err != nil {
		log.WithError(err).Error("Failed to update vehicle mileage")
		return mileage
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("Failed to update vehicle mileage")
	}

	return mileage
}

func post(url string, payload interface{}, kind string) {
	resp, err := postJSON(url, payload)
	if err != nil {
		log.WithError(err).Errorf("Failed to create %s", kind)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.WithField("status", resp.StatusCode).Errorf("Failed to create %s", kind)
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@garagelog.dev"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo-password-123"
	}

	vehicleCount := 3
	if v := os.Getenv("SEED_VEHICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			vehicleCount = n
		}
	}
	months := 12
	if v := os.Getenv("SEED_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			months = n
		}
	}

	log.WithFields(log.Fields{
		"api_url":  apiURL,
		"email":    email,
		"vehicles": vehicleCount,
		"months":   months,
	}).Info("Seeding garage data")

	token, err := authenticate(apiURL, email, password)
	if err != nil {
		log.WithError(err).Fatal("Authentication failed. Ensure the API is reachable.")
	}
	authToken = token

	for i := 0; i < vehicleCount; i++ {
		vehicle, mpg, err := createVehicle(apiURL, months)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		finalMileage := backfillHistory(apiURL, vehicle, mpg, months)
		log.WithFields(log.Fields{
			"vehicle_id": vehicle.ID.Hex(),
			"mileage":    finalMileage,
		}).Info("History backfilled")
	}

	log.Info("Seeding complete")
}
