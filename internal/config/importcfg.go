package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ImportColumns maps logical spreadsheet fields to the locale-specific
// column headers used by the billing exports.
type ImportColumns struct {
	TxnCode         string `mapstructure:"txnCode"`
	TxnDate         string `mapstructure:"txnDate"`
	Amount          string `mapstructure:"amount"`
	Status          string `mapstructure:"status"`
	TransactionType string `mapstructure:"transactionType"`
	FullName        string `mapstructure:"fullName"`
	Identification  string `mapstructure:"identification"`
	Address         string `mapstructure:"address"`
	Phone           string `mapstructure:"phone"`
	Email           string `mapstructure:"email"`
	PlatformName    string `mapstructure:"platformName"`
	InvoiceNumber   string `mapstructure:"invoiceNumber"`
	BillingPeriod   string `mapstructure:"billingPeriod"`
	BilledAmount    string `mapstructure:"billedAmount"`
	PaidAmount      string `mapstructure:"paidAmount"`
}

// ImportConfig carries the tunable knobs of the spreadsheet import pipeline.
type ImportConfig struct {
	Columns                ImportColumns `mapstructure:"columns"`
	AllowedExtensions      []string      `mapstructure:"allowedExtensions"`
	MaxUploadBytes         int64         `mapstructure:"maxUploadBytes"`
	RowErrorLimit          int           `mapstructure:"rowErrorLimit"`
	DefaultTransactionType string        `mapstructure:"defaultTransactionType"`
	TransactionStatuses    []string      `mapstructure:"transactionStatuses"`
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Columns: ImportColumns{
			TxnCode:         "ID de la Transacción",
			TxnDate:         "Fecha y Hora de la Transacción",
			Amount:          "Monto de la Transacción",
			Status:          "Estado de la Transacción",
			TransactionType: "Tipo de Transacción",
			FullName:        "Nombre del Cliente",
			Identification:  "Número de Identificación",
			Address:         "Dirección",
			Phone:           "Teléfono",
			Email:           "Correo Electrónico",
			PlatformName:    "Plataforma Utilizada",
			InvoiceNumber:   "Número de Factura",
			BillingPeriod:   "Periodo de Facturación",
			BilledAmount:    "Monto Facturado",
			PaidAmount:      "Monto Pagado",
		},
		AllowedExtensions:      []string{".xlsx", ".xls", ".csv"},
		MaxUploadBytes:         10 * 1024 * 1024,
		RowErrorLimit:          25,
		DefaultTransactionType: "Pago de Factura",
		TransactionStatuses:    []string{"Pendiente", "Completada", "Fallida"},
	}
}

// ImportConfigHolder exposes the current import configuration and hot
// reloads it when the backing file changes.
type ImportConfigHolder struct {
	current atomic.Value // holds ImportConfig
}

func NewImportConfigHolder() (*ImportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("backoffice")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/backoffice/config") // Volume-mounted config
	v.AddConfigPath("/etc/backoffice")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultImportConfig()
	v.SetDefault("import.columns", defaults.Columns)
	v.SetDefault("import.allowedExtensions", defaults.AllowedExtensions)
	v.SetDefault("import.maxUploadBytes", defaults.MaxUploadBytes)
	v.SetDefault("import.rowErrorLimit", defaults.RowErrorLimit)
	v.SetDefault("import.defaultTransactionType", defaults.DefaultTransactionType)
	v.SetDefault("import.transactionStatuses", defaults.TransactionStatuses)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ImportConfig
	if err := v.UnmarshalKey("import", &cfg); err != nil {
		return nil, err
	}
	if err := validateImportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ImportConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ImportConfig
		if err := v.UnmarshalKey("import", &updated); err != nil {
			log.Printf("[import-config] reload failed: %v", err)
			return
		}
		if err := validateImportConfig(updated); err != nil {
			log.Printf("[import-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[import-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ImportConfigHolder) Get() ImportConfig {
	return h.current.Load().(ImportConfig)
}

// NewStaticImportConfigHolder wraps a fixed config, bypassing viper.
// Intended for tests.
func NewStaticImportConfigHolder(cfg ImportConfig) *ImportConfigHolder {
	holder := &ImportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateImportConfig(cfg ImportConfig) error {
	if len(cfg.AllowedExtensions) == 0 {
		return errors.New("import.allowedExtensions cannot be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("import.maxUploadBytes must be positive")
	}
	if cfg.RowErrorLimit <= 0 {
		return errors.New("import.rowErrorLimit must be positive")
	}
	if len(cfg.TransactionStatuses) == 0 {
		return errors.New("import.transactionStatuses cannot be empty")
	}
	return nil
}
