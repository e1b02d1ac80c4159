package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// DefaultCatalog returns the products the demo storefront sells
func DefaultCatalog() []models.Product {
	product := func(id, name string, price models.Price, image string, reviews ...string) models.Product {
		return models.Product{
			ID:       id,
			Name:     name,
			Price:    price,
			ImageURL: "assets/public/images/products/" + image,
			Reviews:  reviews,
		}
	}
	return []models.Product{
		product("1", "Apple Juice (1000ml)", 199, "apple_juice.jpg",
			"One of my favorites!", "Tastes like apples, what a surprise."),
		product("2", "Orange Juice (1000ml)", 299, "orange_juice.jpg"),
		product("3", "Eggfruit Juice (500ml)", 899, "eggfruit_juice.jpg",
			"I bought it, would buy again. 5/7"),
		product("4", "Raspberry Juice (1000ml)", 499, "raspberry_juice.jpg"),
		product("5", "Lemon Juice (500ml)", 299, "lemon_juice.jpg"),
		product("6", "Banana Juice (1000ml)", 199, "banana_juice.jpg",
			"Monkeys love it the most."),
		product("7", "Carrot Juice (1000ml)", 299, "carrot_juice.jpeg",
			"As the old German saying goes: Carrots are good for the eyes."),
		product("8", "Apple Pomace", 89, "apple_pressings.jpg"),
		product("9", "Green Smoothie", 199, "green_smoothie.jpg",
			"Fresh out of a replicator."),
		product("10", "Quince Juice (1000ml)", 499, "quince.jpg"),
		product("11", "Fruit Press", 8999, "fruit_press.jpg"),
		product("12", "Melon Bike (Comeback-Product 2018 Edition)", 299900, "melon_bike.jpeg"),
		product("13", "Strawberry Juice (500ml)", 399, "strawberry_juice.jpeg"),
		product("14", "Pwning OWASP Juice Shop", 599, "cover_small.jpg",
			"Even more interesting than the shop itself."),
		product("15", "OWASP SSL Advanced Forensic Tool (O-Saft)", 1, "orange_juice.jpg"),
		product("16", "Juice Shop Artwork", 27899, "JuiceShop.jpg"),
		product("17", "OWASP Juice Shop Mug", 2199, "fan_mug.jpg"),
		product("18", "OWASP Juice Shop Hoodie", 4999, "fan_hoodie.jpg",
			"Keeps me warm while hacking."),
		product("19", "OWASP Juice Shop Sticker Page", 999, "sticker_page.jpg"),
		product("20", "Woodruff Syrup \"Forest Master X-Treme\"", 699, "woodruff_syrup.jpg"),
	}
}

// StorefrontService defines the interface for the demo shop's session state
type StorefrontService interface {
	Catalog() []models.Product
	Product(productID string) (models.Product, error)
	Session(sessionID string) models.ShopSession
	AddToBasket(sessionID, productID string) (models.Product, error)
	IncrementLine(sessionID, productID string) error
	RemoveLine(sessionID, productID string) error
	AddAddress(sessionID string, address models.Address) (models.SavedAddress, error)
	SelectAddress(sessionID, addressID string) error
	SelectDelivery(sessionID, method string) error
	AddCard(sessionID string, card models.Card) (models.SavedCard, error)
	SelectCard(sessionID, cardID string) error
	PlaceOrder(sessionID string) (*models.Order, error)
	Register(account models.Account, password, repeat string) error
	Login(sessionID, email, password string) error
	Logout(sessionID string)
}

// StorefrontServiceImpl implements StorefrontService with in-memory sessions
// and accounts. Orders go through the OrderService.
type StorefrontServiceImpl struct {
	catalog []models.Product
	orders  OrderService

	mu       sync.Mutex
	sessions map[string]*models.ShopSession
	accounts map[string]models.Account
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(catalog []models.Product, orders OrderService) StorefrontService {
	return &StorefrontServiceImpl{
		catalog:  catalog,
		orders:   orders,
		sessions: make(map[string]*models.ShopSession),
		accounts: make(map[string]models.Account),
	}
}

// Catalog returns the products on sale
func (s *StorefrontServiceImpl) Catalog() []models.Product {
	return append([]models.Product(nil), s.catalog...)
}

// Product looks a product up by ID
func (s *StorefrontServiceImpl) Product(productID string) (models.Product, error) {
	for _, p := range s.catalog {
		if p.ID == productID {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %s", models.ErrUnknownProduct, productID)
}

// session returns the live session, creating it on first use. Callers hold mu.
func (s *StorefrontServiceImpl) session(sessionID string) *models.ShopSession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &models.ShopSession{ID: sessionID, Cart: models.Cart{ID: uuid.New().String()}}
		s.sessions[sessionID] = sess
	}
	return sess
}

// Session returns a copy of the session that callers may read freely
func (s *StorefrontServiceImpl) Session(sessionID string) models.ShopSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.session(sessionID)
	snapshot.Cart.Lines = append([]models.CartLine(nil), snapshot.Cart.Lines...)
	snapshot.Addresses = append([]models.SavedAddress(nil), snapshot.Addresses...)
	snapshot.Cards = append([]models.SavedCard(nil), snapshot.Cards...)
	return snapshot
}

// AddToBasket puts one unit of a product into the session's basket
func (s *StorefrontServiceImpl) AddToBasket(sessionID, productID string) (models.Product, error) {
	product, err := s.Product(productID)
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).Cart.Add(product)
	return product, nil
}

// IncrementLine adds one unit to a basket line
func (s *StorefrontServiceImpl) IncrementLine(sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionID).Cart.Increment(productID)
}

// RemoveLine deletes a basket line
func (s *StorefrontServiceImpl) RemoveLine(sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionID).Cart.Remove(productID)
}

// AddAddress stores a delivery address in the session
func (s *StorefrontServiceImpl) AddAddress(sessionID string, address models.Address) (models.SavedAddress, error) {
	if strings.TrimSpace(address.Name) == "" {
		return models.SavedAddress{}, models.ErrInvalidAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	saved := models.SavedAddress{ID: uuid.New().String(), Address: address}
	sess.Addresses = append(sess.Addresses, saved)
	return saved, nil
}

// SelectAddress chooses the delivery address for checkout
func (s *StorefrontServiceImpl) SelectAddress(sessionID, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	for _, a := range sess.Addresses {
		if a.ID == addressID {
			sess.AddressID = addressID
			return nil
		}
	}
	return models.ErrUnknownAddress
}

// SelectDelivery chooses the delivery method by name
func (s *StorefrontServiceImpl) SelectDelivery(sessionID, method string) error {
	if _, ok := models.FindDeliveryMethod(method); !ok {
		return fmt.Errorf("%w: %s", models.ErrNoDelivery, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).Delivery = method
	return nil
}

// AddCard stores a payment card in the session
func (s *StorefrontServiceImpl) AddCard(sessionID string, card models.Card) (models.SavedCard, error) {
	if len(card.Number) < 4 {
		return models.SavedCard{}, models.ErrInvalidCard
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	saved := models.SavedCard{ID: uuid.New().String(), Card: card}
	sess.Cards = append(sess.Cards, saved)
	return saved, nil
}

// SelectCard chooses the payment card for checkout
func (s *StorefrontServiceImpl) SelectCard(sessionID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	for _, c := range sess.Cards {
		if c.ID == cardID {
			sess.CardID = cardID
			return nil
		}
	}
	return models.ErrUnknownCard
}

// PlaceOrder places an order for the session's basket with its checkout
// choices and empties the basket
func (s *StorefrontServiceImpl) PlaceOrder(sessionID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	address, err := sess.SelectedAddress()
	if err != nil {
		return nil, err
	}
	card, err := sess.SelectedCard()
	if err != nil {
		return nil, err
	}
	delivery, ok := models.FindDeliveryMethod(sess.Delivery)
	if !ok {
		return nil, models.ErrNoDelivery
	}

	order, err := s.orders.PlaceOrder(&sess.Cart, address.Name, delivery, card.LastFour())
	if err != nil {
		return nil, err
	}

	sess.Cart = models.Cart{ID: uuid.New().String()}
	sess.AddressID = ""
	sess.Delivery = ""
	sess.CardID = ""
	return order, nil
}

// Register creates an account from the registration form
func (s *StorefrontServiceImpl) Register(account models.Account, password, repeat string) error {
	account.Email = strings.TrimSpace(account.Email)
	if account.Email == "" || password == "" || account.SecurityQuestion == "" || account.SecurityAnswer == "" {
		return models.ErrIncompleteRegistration
	}
	if password != repeat {
		return models.ErrPasswordsDifferent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Email]; exists {
		return fmt.Errorf("%w: %s", models.ErrAccountExists, account.Email)
	}
	account.PasswordHash = models.HashPassword(password)
	s.accounts[account.Email] = account
	return nil
}

// Login signs the session in
func (s *StorefrontServiceImpl) Login(sessionID, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[strings.TrimSpace(email)]
	if !ok || account.PasswordHash != models.HashPassword(password) {
		return models.ErrInvalidLogin
	}
	s.session(sessionID).Email = account.Email
	return nil
}

// Logout signs the session out
func (s *StorefrontServiceImpl) Logout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).Email = ""
}
