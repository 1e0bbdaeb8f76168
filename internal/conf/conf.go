package conf

type Bootstrap struct {
	Server    *Server
	Data      *Data
	Generator *Generator
	Log       *Log
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Generator struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	// Timeout is the per-call deadline in seconds. Zero means the
	// client default.
	Timeout     int32        `json:"timeout"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
