package models

// Storage entities of the dev backend. JSON shapes match the wire contract
// the storefront expects, gorm tags describe the tables.

type Book struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Titulo  string  `gorm:"not null"                 json:"titulo"`
	Autor   string  `gorm:"not null"                 json:"autor"`
	Editora string  `json:"editora"`
	Genero  string  `gorm:"index"                    json:"genero"`
	Ano     int     `json:"ano"`
	Paginas int     `json:"paginas"`
	Preco   float64 `gorm:"not null"                 json:"preco"`
}

type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null"                 json:"name"`
	Email     string `gorm:"uniqueIndex;not null"     json:"email"`
	SenhaHash string `gorm:"not null"                 json:"-"`
}

type Pagamento struct {
	ID             int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	User           string  `gorm:"column:username"          json:"user"`
	Email          string  `gorm:"index;not null"           json:"email"`
	ValorTotal     float64 `gorm:"not null"                 json:"valorTotal"`
	FormaPagamento string  `gorm:"not null"                 json:"formaPagamento"`
	DataPagamento  string  `gorm:"not null"                 json:"dataPagamento"`
}

func (Pagamento) TableName() string { return "pagamentos" }
