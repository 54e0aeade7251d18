package domain

// Entity - любая запись ресурса. ID стабилен и уникален в пределах ресурса
// и служит ключом сверки списка после мутаций.
type Entity interface {
	EntityID() int64
}

type City struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func (c City) EntityID() int64 { return c.ID }

type District struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CityID   int64  `json:"city"`
	IsActive bool   `json:"is_active"`
}

func (d District) EntityID() int64 { return d.ID }

type User struct {
	ID         int64  `json:"id"`
	Phone      string `json:"phone"`
	FullName   string `json:"full_name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	IsActive   bool   `json:"is_active"`
	IsBlocked  bool   `json:"is_blocked"`
	DateJoined string `json:"date_joined,omitempty"`
}

func (u User) EntityID() int64 { return u.ID }

// Tariff - платный тариф продвижения объявления.
type Tariff struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Description  string  `json:"description,omitempty"`
	IsActive     bool    `json:"is_active"`
}

func (t Tariff) EntityID() int64 { return t.ID }

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Icon     string `json:"icon,omitempty"`
	ParentID *int64 `json:"parent,omitempty"`
	IsActive bool   `json:"is_active"`
}

func (c Category) EntityID() int64 { return c.ID }

type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

func (b Banner) EntityID() int64 { return b.ID }

// Property - объявление о недвижимости.
type Property struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	DealType    string   `json:"deal_type,omitempty"`
	CategoryID  int64    `json:"category"`
	CityID      int64    `json:"city"`
	DistrictID  *int64   `json:"district,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Images      []string `json:"images,omitempty"`
	Status      string   `json:"status,omitempty"`
	IsPaid      bool     `json:"is_paid"`
	IsTop       bool     `json:"is_top"`
	OwnerID     int64    `json:"owner,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

func (p Property) EntityID() int64 { return p.ID }

// StaticPage - статическая страница сайта ("О нас", "Правила" и т.п.).
type StaticPage struct {
	ID       int64  `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsActive bool   `json:"is_active"`
}

func (s StaticPage) EntityID() int64 { return s.ID }

type Payment struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user"`
	TariffID      *int64  `json:"tariff,omitempty"`
	PropertyID    *int64  `json:"property,omitempty"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentSystem string  `json:"payment_system,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

func (p Payment) EntityID() int64 { return p.ID }

// Statistics - агрегированная статистика для главной страницы панели.
type Statistics struct {
	UsersCount            int64            `json:"users_count"`
	PropertiesCount       int64            `json:"properties_count"`
	ActivePropertiesCount int64            `json:"active_properties_count"`
	PaidPropertiesCount   int64            `json:"paid_properties_count"`
	PaymentsCount         int64            `json:"payments_count"`
	PaymentsTotal         float64          `json:"payments_total"`
	PropertiesByCategory  map[string]int64 `json:"properties_by_category,omitempty"`
}
