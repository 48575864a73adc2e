package config

import (
	"encoding/json"
	"log"
	"os"

	"avalia/classify"
)

type Configuration struct {
	ApiPort    string `json:"api_port"`
	LogPath    string `json:"log_path"`
	StorageDir string `json:"storage_dir"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret string `json:"jwt_secret"`
	} `json:"security"`

	Report struct {
		MinimumYear            int               `json:"minimum_year"`
		IntroBoilerplate       string            `json:"intro_boilerplate"`
		MethodologyBoilerplate string            `json:"methodology_boilerplate"`
		VerdictCopy            map[string]string `json:"verdict_copy"`
	} `json:"report"`

	// Domains é a tabela de política palavra-chave -> domínio usada pelo
	// veredito de efetividade. Configurável para poder ajustar a política
	// sem tocar no algoritmo de pontuação.
	Domains []classify.Domain `json:"domains"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}
	return WithDefaults(c)
}

// WithDefaults preenche os campos vazios (pra evitar nil/zero chato).
func WithDefaults(c Configuration) Configuration {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.StorageDir == "" {
		c.StorageDir = "storage"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Report.MinimumYear <= 0 {
		c.Report.MinimumYear = 2020
	}
	if c.Report.IntroBoilerplate == "" {
		c.Report.IntroBoilerplate = "Este relatório apresenta a avaliação de efetividade " +
			"da política de prevenção, realizada por meio de autoavaliação periódica."
	}
	if c.Report.MethodologyBoilerplate == "" {
		c.Report.MethodologyBoilerplate = "A avaliação percorreu os itens abaixo, " +
			"com testes documentados e evidências anexadas por item."
	}
	if len(c.Report.VerdictCopy) == 0 {
		c.Report.VerdictCopy = map[string]string{
			classify.VERDICT_EFETIVO: "Os mecanismos avaliados mostraram-se efetivos, " +
				"sem deficiências de alta criticidade relevantes nos domínios analisados.",
			classify.VERDICT_PARCIALMENTE_EFETIVO: "Foram identificadas deficiências de alta " +
				"criticidade em dois dos domínios analisados; os mecanismos mostraram-se parcialmente efetivos.",
			classify.VERDICT_POUCO_EFETIVO: "Foram identificadas deficiências de alta criticidade " +
				"nos três domínios analisados; os mecanismos mostraram-se pouco efetivos.",
		}
	}
	if len(c.Domains) == 0 {
		c.Domains = classify.DefaultPolicy()
	}
	return c
}
