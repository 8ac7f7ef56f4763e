package webapi

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type productExportRow struct {
	ID              string  `csv:"id"`
	Name            string  `csv:"name"`
	Category        string  `csv:"category"`
	Price           float64 `csv:"price"`
	Discount        int     `csv:"discount"`
	DiscountedPrice float64 `csv:"discounted_price"`
	Featured        bool    `csv:"featured"`
	InStock         bool    `csv:"in_stock"`
	Rating          float64 `csv:"rating"`
	Reviews         int     `csv:"reviews"`
}

type messageExportRow struct {
	ID        string `csv:"id"`
	Name      string `csv:"name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
	Subject   string `csv:"subject"`
	Message   string `csv:"message"`
	CreatedAt string `csv:"created_at"`
	Read      bool   `csv:"read"`
	Replied   bool   `csv:"replied"`
}

func (s *WebServer) adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	cfg := s.app.Config().Web
	if payload.Username != cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassword), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	expiresAt := time.Now().Add(time.Duration(cfg.TokenTTLHours) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   payload.Username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		zap.S().Errorf("token signing failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}

	return ok(c, echo.Map{
		"token":     signed,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *WebServer) exportProducts(c echo.Context) error {
	products := s.app.Products().ListAll(c.Request().Context())
	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productExportRow{
			ID:              p.ID,
			Name:            p.Name,
			Category:        p.Category,
			Price:           p.Price,
			Discount:        p.Discount,
			DiscountedPrice: p.DiscountedPrice,
			Featured:        p.Featured,
			InStock:         p.InStock,
			Rating:          p.Rating,
			Reviews:         p.Reviews,
		})
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		zap.S().Errorf("product export failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to export products")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

func (s *WebServer) exportMessages(c echo.Context) error {
	messages := s.app.Messages().ListAll(c.Request().Context())
	rows := make([]messageExportRow, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, messageExportRow{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Subject:   m.Subject,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
			Read:      m.Read,
			Replied:   m.Replied,
		})
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		zap.S().Errorf("message export failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to export messages")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="messages.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

// adminSummary aggregates catalog pricing and inbox counters for the admin
// dashboard.
func (s *WebServer) adminSummary(c echo.Context) error {
	ctx := c.Request().Context()
	products := s.app.Products().ListAll(ctx)
	messages := s.app.Messages().ListAll(ctx)

	prices := make([]float64, 0, len(products))
	ratings := make([]float64, 0, len(products))
	featured, outOfStock := 0, 0
	for _, p := range products {
		prices = append(prices, p.Price)
		ratings = append(ratings, p.Rating)
		if p.Featured {
			featured++
		}
		if !p.InStock {
			outOfStock++
		}
	}

	meanPrice, _ := stats.Mean(prices)
	medianPrice, _ := stats.Median(prices)
	maxPrice, _ := stats.Max(prices)
	meanRating, _ := stats.Mean(ratings)

	unread, replied := 0, 0
	for _, m := range messages {
		if !m.Read {
			unread++
		}
		if m.Replied {
			replied++
		}
	}

	lastSync := ""
	if ts, okts := s.app.Products().LastFetch(); okts {
		lastSync = ts.UTC().Format(time.RFC3339)
	}

	return ok(c, echo.Map{
		"products": echo.Map{
			"total":       len(products),
			"featured":    featured,
			"outOfStock":  outOfStock,
			"meanPrice":   meanPrice,
			"medianPrice": medianPrice,
			"maxPrice":    maxPrice,
			"meanRating":  meanRating,
		},
		"messages": echo.Map{
			"total":   len(messages),
			"unread":  unread,
			"replied": replied,
		},
		"lastSync": lastSync,
	})
}

func (s *WebServer) adminStatus(c echo.Context) error {
	status := echo.Map{
		"goroutines": runtime.NumGoroutine(),
		"go_version": runtime.Version(),
	}

	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		status["cpu_percent"] = cpuuse[0]
	}
	if meminfo, err := mem.VirtualMemory(); err == nil {
		status["mem_used_mb"] = meminfo.Used / 1024 / 1024
		status["mem_percent"] = meminfo.UsedPercent
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if meminfo, err := p.MemoryInfo(); err == nil {
			status["rss_mb"] = meminfo.RSS / 1024 / 1024
		}
		if cpuuse, err := p.CPUPercent(); err == nil {
			status["process_cpu_percent"] = cpuuse
		}
	}

	return ok(c, status)
}
