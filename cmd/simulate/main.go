package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
)

// SimConfig параметры нагрузочной симуляции
type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	Doctors      int
	HorizonDays  int
	BookingRatio float64
	CancelRatio  float64
	ReadRatio    float64
}

// OperationMetrics счетчики и задержки одного типа операций
type OperationMetrics struct {
	mu        sync.Mutex
	Total     int
	Success   int
	Conflict  int
	Errors    int
	Latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	om.mu.Lock()
	defer om.mu.Unlock()

	om.Total++
	switch {
	case err != nil:
		om.Errors++
	case status >= 200 && status < 300:
		om.Success++
	case status == http.StatusConflict:
		om.Conflict++
	default:
		om.Errors++
	}
	om.Latencies = append(om.Latencies, latency)
}

func (om *OperationMetrics) Stats() (avg, p50, p95, max time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]
	max = latencies[len(latencies)-1]

	return avg, p50, p95, max
}

func percentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Metrics метрики симуляции по операциям
type Metrics struct {
	Slots    OperationMetrics
	Booking  OperationMetrics
	Cancel   OperationMetrics
	ReadByID OperationMetrics
}

// booking созданная в ходе симуляции запись
type booking struct {
	id        int64
	patientID int64
}

// Simulator нагружает API запросами от имени случайных пациентов
type Simulator struct {
	config  SimConfig
	client  *http.Client
	logger  *logger.Logger
	metrics Metrics

	// Пул заметок заполняется до старта воркеров и дальше только читается
	notes []string

	mu       sync.Mutex
	bookings []booking
}

func main() {
	log := logger.NewWithWriter(os.Stdout, getEnv("LOG_LEVEL", "info"))

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatal("simulate: invalid config: %v", err)
	}

	log.Info("simulate: duration=%s workers=%d doctors=%d booking=%.2f cancel=%.2f read=%.2f",
		cfg.Duration, cfg.Workers, cfg.Doctors, cfg.BookingRatio, cfg.CancelRatio, cfg.ReadRatio)

	gofakeit.Seed(time.Now().UnixNano())

	notes := make([]string, 0, 100)
	for i := 0; i < cap(notes); i++ {
		notes = append(notes, fmt.Sprintf("referred by %s, contact %s", gofakeit.Name(), gofakeit.Email()))
	}

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: log,
		notes:  notes,
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:   getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		Doctors:      getInt("SIM_DOCTORS", 20),
		HorizonDays:  getInt("SIM_HORIZON_DAYS", 14),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.5),
		CancelRatio:  getFloat("SIM_CANCEL_RATIO", 0.2),
		ReadRatio:    getFloat("SIM_READ_RATIO", 0.3),
	}

	total := cfg.BookingRatio + cfg.CancelRatio + cfg.ReadRatio
	if total > 0 {
		cfg.BookingRatio /= total
		cfg.CancelRatio /= total
		cfg.ReadRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.Doctors <= 0 {
		return fmt.Errorf("SIM_DOCTORS must be > 0")
	}
	if cfg.HorizonDays <= 0 {
		return fmt.Errorf("SIM_HORIZON_DAYS must be > 0")
	}
	return nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	s.logger.Info("simulate: starting %d workers", s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	s.logger.Info("simulate: complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r := rng.Float64()
		switch {
		case r < s.config.BookingRatio:
			s.doBooking(ctx, rng)
		case r < s.config.BookingRatio+s.config.CancelRatio:
			s.doCancel(ctx, rng)
		default:
			s.doReadByID(ctx, rng)
		}
	}
}

// doBooking запрашивает свободные слоты и пытается занять один из них
// Несколько воркеров часто выбирают один слот, поэтому 409 ожидаем
func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	doctorID := int64(rng.Intn(s.config.Doctors) + 1)
	patientID := int64(100000 + rng.Intn(5000))
	date := time.Now().AddDate(0, 0, rng.Intn(s.config.HorizonDays)+1).Format("2006-01-02")

	var slots struct {
		Slots []string `json:"slots"`
	}
	url := fmt.Sprintf("%s/api/v1/doctors/%d/available-slots?date=%s", s.config.APIBaseURL, doctorID, date)
	status, err := s.do(ctx, http.MethodGet, url, 0, nil, &slots, &s.metrics.Slots)
	if err != nil || status != http.StatusOK || len(slots.Slots) == 0 {
		return
	}

	body := map[string]interface{}{
		"doctorId": doctorID,
		"date":     date,
		"slot":     slots.Slots[rng.Intn(len(slots.Slots))],
		"notes":    s.notes[rng.Intn(len(s.notes))],
	}

	var created struct {
		ID int64 `json:"id"`
	}
	status, err = s.do(ctx, http.MethodPost, s.config.APIBaseURL+"/api/v1/appointments", patientID, body, &created, &s.metrics.Booking)
	if err == nil && status == http.StatusCreated && created.ID > 0 {
		s.mu.Lock()
		s.bookings = append(s.bookings, booking{id: created.ID, patientID: patientID})
		s.mu.Unlock()
	}
}

func (s *Simulator) doCancel(ctx context.Context, rng *rand.Rand) {
	b, ok := s.takeBooking(rng)
	if !ok {
		return
	}

	url := fmt.Sprintf("%s/api/v1/appointments/%d/cancel", s.config.APIBaseURL, b.id)
	body := map[string]string{"cancellationReason": "simulation"}
	_, _ = s.do(ctx, http.MethodPatch, url, b.patientID, body, nil, &s.metrics.Cancel)
}

func (s *Simulator) doReadByID(ctx context.Context, rng *rand.Rand) {
	s.mu.Lock()
	if len(s.bookings) == 0 {
		s.mu.Unlock()
		return
	}
	b := s.bookings[rng.Intn(len(s.bookings))]
	s.mu.Unlock()

	url := fmt.Sprintf("%s/api/v1/appointments/%d", s.config.APIBaseURL, b.id)
	_, _ = s.do(ctx, http.MethodGet, url, b.patientID, nil, nil, &s.metrics.ReadByID)
}

// takeBooking извлекает случайную запись, чтобы не отменять ее повторно
func (s *Simulator) takeBooking(rng *rand.Rand) (booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bookings) == 0 {
		return booking{}, false
	}

	idx := rng.Intn(len(s.bookings))
	b := s.bookings[idx]
	s.bookings[idx] = s.bookings[len(s.bookings)-1]
	s.bookings = s.bookings[:len(s.bookings)-1]

	return b, true
}

// do выполняет запрос и записывает результат в om
// userID == 0 означает запрос без X-User-ID
func (s *Simulator) do(
	ctx context.Context,
	method, url string,
	userID int64,
	body interface{},
	out interface{},
	om *OperationMetrics,
) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		// Конец симуляции обрывает запросы в полете, это не ошибка сервиса
		if ctx.Err() == nil {
			om.Record(latency, 0, err)
		}
		return 0, err
	}
	defer resp.Body.Close()

	om.Record(latency, resp.StatusCode, nil)

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}

	return resp.StatusCode, nil
}

func (s *Simulator) PrintReport() {
	fmt.Println()
	fmt.Println("=== SIMULATION REPORT ===")
	fmt.Printf("duration: %s, workers: %d\n\n", s.config.Duration, s.config.Workers)

	fmt.Printf("%-10s %8s %8s %8s %8s %10s %10s %10s %10s\n",
		"operation", "total", "ok", "conflict", "errors", "avg", "p50", "p95", "max")

	report := []struct {
		name string
		om   *OperationMetrics
	}{
		{"slots", &s.metrics.Slots},
		{"booking", &s.metrics.Booking},
		{"cancel", &s.metrics.Cancel},
		{"read", &s.metrics.ReadByID},
	}

	var total int
	for _, r := range report {
		avg, p50, p95, max := r.om.Stats()
		fmt.Printf("%-10s %8d %8d %8d %8d %10s %10s %10s %10s\n",
			r.name, r.om.Total, r.om.Success, r.om.Conflict, r.om.Errors,
			avg.Round(time.Microsecond), p50.Round(time.Microsecond),
			p95.Round(time.Microsecond), max.Round(time.Microsecond))
		total += r.om.Total
	}

	fmt.Printf("\nthroughput: %.1f req/s\n", float64(total)/s.config.Duration.Seconds())
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
