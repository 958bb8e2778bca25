package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	TMDB      TMDB      `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Prowlarr  Prowlarr  `json:"prowlarr" yaml:"prowlarr" mapstructure:"prowlarr"`
	Library   Library   `json:"library" yaml:"library" mapstructure:"library"`
	Storage   Storage   `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server    Server    `json:"server" yaml:"server" mapstructure:"server"`
	Log       Log       `json:"log" yaml:"log" mapstructure:"log"`
	Scheduler Scheduler `json:"scheduler" yaml:"scheduler" mapstructure:"scheduler"`
}

type TMDB struct {
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host   string `json:"host" yaml:"host" mapstructure:"host"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

type Library struct {
	MovieDir string `json:"movie" yaml:"movie" mapstructure:"movie"`
	TVDir    string `json:"tv" yaml:"tv" mapstructure:"tv"`
}

// Prowlarr is the bootstrap connection for the default indexer manager.
// Additional indexers beyond this one are store-backed (automation/indexers)
// and configured at runtime, not here.
type Prowlarr struct {
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host   string `json:"host" yaml:"host" mapstructure:"host"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Log controls the base zap logger's verbosity.
type Log struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Scheduler holds the default intervals for the built-in background
// workers; overridable per-worker at runtime via /system/workers.
type Scheduler struct {
	DownloadSyncSeconds       int `json:"downloadSyncSeconds" yaml:"downloadSyncSeconds" mapstructure:"downloadSyncSeconds"`
	ImportListSyncMinutes     int `json:"importListSyncMinutes" yaml:"importListSyncMinutes" mapstructure:"importListSyncMinutes"`
	LibraryRefreshMinutes     int `json:"libraryRefreshMinutes" yaml:"libraryRefreshMinutes" mapstructure:"libraryRefreshMinutes"`
	MetadataRefreshHours      int `json:"metadataRefreshHours" yaml:"metadataRefreshHours" mapstructure:"metadataRefreshHours"`
	MissingSearchMinutes      int `json:"missingSearchMinutes" yaml:"missingSearchMinutes" mapstructure:"missingSearchMinutes"`
	CutoffSearchMinutes       int `json:"cutoffSearchMinutes" yaml:"cutoffSearchMinutes" mapstructure:"cutoffSearchMinutes"`
	RSSSyncMinutes            int `json:"rssSyncMinutes" yaml:"rssSyncMinutes" mapstructure:"rssSyncMinutes"`
	ActivityCleanupHours      int `json:"activityCleanupHours" yaml:"activityCleanupHours" mapstructure:"activityCleanupHours"`
	DatabaseBackupMinutes     int `json:"databaseBackupMinutes" yaml:"databaseBackupMinutes" mapstructure:"databaseBackupMinutes"`
}

// Defaults returns the nine built-in workers' intervals when the
// corresponding config value is unset (zero).
func (s Scheduler) Defaults() Scheduler {
	d := Scheduler{
		DownloadSyncSeconds:   5,
		ImportListSyncMinutes: 60,
		LibraryRefreshMinutes: 60,
		MetadataRefreshHours:  24,
		MissingSearchMinutes:  60,
		CutoffSearchMinutes:   360,
		RSSSyncMinutes:        15,
		ActivityCleanupHours:  24,
		DatabaseBackupMinutes: 1,
	}
	if s.DownloadSyncSeconds != 0 {
		d.DownloadSyncSeconds = s.DownloadSyncSeconds
	}
	if s.ImportListSyncMinutes != 0 {
		d.ImportListSyncMinutes = s.ImportListSyncMinutes
	}
	if s.LibraryRefreshMinutes != 0 {
		d.LibraryRefreshMinutes = s.LibraryRefreshMinutes
	}
	if s.MetadataRefreshHours != 0 {
		d.MetadataRefreshHours = s.MetadataRefreshHours
	}
	if s.MissingSearchMinutes != 0 {
		d.MissingSearchMinutes = s.MissingSearchMinutes
	}
	if s.CutoffSearchMinutes != 0 {
		d.CutoffSearchMinutes = s.CutoffSearchMinutes
	}
	if s.RSSSyncMinutes != 0 {
		d.RSSSyncMinutes = s.RSSSyncMinutes
	}
	if s.ActivityCleanupHours != 0 {
		d.ActivityCleanupHours = s.ActivityCleanupHours
	}
	if s.DatabaseBackupMinutes != 0 {
		d.DatabaseBackupMinutes = s.DatabaseBackupMinutes
	}
	return d
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}
