package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sokohub/rfq-backend/internal/models"
	"github.com/sokohub/rfq-backend/internal/repository"
)

// SeedService генерирует тестовые данные для разработки.
type SeedService struct {
	userRepo   *repository.UserRepository
	vendorRepo *repository.VendorRepository
	rfqRepo    *repository.RFQRepository
	quoteRepo  *repository.QuoteRepository
}

// NewSeedService создаёт сервис генерации данных.
func NewSeedService(userRepo *repository.UserRepository, vendorRepo *repository.VendorRepository, rfqRepo *repository.RFQRepository, quoteRepo *repository.QuoteRepository) *SeedService {
	return &SeedService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
		rfqRepo:    rfqRepo,
		quoteRepo:  quoteRepo,
	}
}

// SeedData генерирует пользователей, заявки и котировки.
func (s *SeedService) SeedData(ctx context.Context, numUsers, numRFQs int) error {
	buyers, vendors, err := s.generateUsers(ctx, numUsers)
	if err != nil {
		return fmt.Errorf("seed service: generate users: %w", err)
	}

	if err := s.generateRFQs(ctx, buyers, vendors, numRFQs); err != nil {
		return fmt.Errorf("seed service: generate rfqs: %w", err)
	}

	return nil
}

// generateUsers создаёт покупателей и поставщиков с карточками.
func (s *SeedService) generateUsers(ctx context.Context, count int) ([]*models.User, []*models.User, error) {
	firstNames := []string{
		"James", "John", "Peter", "David", "Daniel", "Samuel", "Brian", "Dennis",
		"Mary", "Grace", "Faith", "Mercy", "Joyce", "Esther", "Ann", "Lucy",
		"Kevin", "Victor", "Collins", "Felix", "Nancy", "Caroline", "Diana", "Irene",
	}
	lastNames := []string{
		"Mwangi", "Otieno", "Kamau", "Ochieng", "Wanjiku", "Njoroge", "Kiprop", "Mutua",
		"Achieng", "Wafula", "Koech", "Omondi", "Njeri", "Barasa", "Cheruiyot", "Maina",
	}
	domains := []string{"gmail.com", "yahoo.com", "outlook.com"}
	locations := []string{
		"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Thika", "Machakos", "Nyeri",
	}
	companies := []string{
		"Supplies", "Traders", "Logistics", "Enterprises", "Solutions", "Hardware", "Agencies",
	}

	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	var buyers []*models.User
	var vendors []*models.User

	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		username := fmt.Sprintf("%s_%s_%d", strings.ToLower(firstName), strings.ToLower(lastName), rand.Intn(10000))
		email := fmt.Sprintf("%s.%s.%d@%s",
			strings.ToLower(firstName), strings.ToLower(lastName), rand.Intn(10000), domains[rand.Intn(len(domains))])

		role := models.RoleVendor
		if i%3 == 0 { // треть покупателей, две трети поставщиков
			role = models.RoleBuyer
		}

		user := &models.User{
			Email:        email,
			Username:     username,
			PasswordHash: string(passwordHash),
			Role:         role,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, err
		}

		if role == models.RoleBuyer {
			buyers = append(buyers, user)
			continue
		}

		location := locations[rand.Intn(len(locations))]
		phone := fmt.Sprintf("+2547%08d", rand.Intn(100000000))
		responseTime := float64(1 + rand.Intn(48))
		profile := &models.VendorProfile{
			UserID:            user.ID,
			DisplayName:       fmt.Sprintf("%s %s %s", firstName, lastName, companies[rand.Intn(len(companies))]),
			Phone:             &phone,
			ContactEmail:      &user.Email,
			ResponseTimeHours: &responseTime,
			Location:          &location,
		}
		if err := s.vendorRepo.Upsert(ctx, profile); err != nil {
			return nil, nil, err
		}

		// Примерно у трёх из четырёх поставщиков есть рейтинг
		if rand.Intn(4) != 0 {
			rating := 2.5 + rand.Float64()*2.5
			if err := s.vendorRepo.SetRating(ctx, user.ID, float64(int(rating*10))/10); err != nil {
				return nil, nil, err
			}
		}
		if rand.Intn(3) == 0 {
			if err := s.vendorRepo.SetVerified(ctx, user.ID, true); err != nil {
				return nil, nil, err
			}
		}

		vendors = append(vendors, user)
	}

	return buyers, vendors, nil
}

// generateRFQs создаёт заявки и отклики на них.
func (s *SeedService) generateRFQs(ctx context.Context, buyers, vendors []*models.User, count int) error {
	if len(buyers) == 0 || len(vendors) == 0 {
		return fmt.Errorf("недостаточно пользователей для генерации заявок")
	}

	titles := []string{
		"Supply of office furniture",
		"Borehole drilling and installation",
		"Monthly cleaning services contract",
		"Delivery of construction materials",
		"Catering for corporate event",
		"CCTV installation for warehouse",
		"Printing of marketing materials",
		"Fleet maintenance services",
		"Solar panel installation",
		"IT equipment procurement",
	}
	timelines := []string{
		"3 days", "1 week", "2 weeks", "1 month", "6 weeks", "2 months",
	}
	messages := []string{
		"Delivery included in the quoted price.",
		"We can start immediately upon confirmation.",
		"Price negotiable for long term contracts.",
		"Includes one year warranty on workmanship.",
	}

	for i := 0; i < count; i++ {
		buyer := buyers[rand.Intn(len(buyers))]
		budget := float64(10000 + rand.Intn(490000))

		rfq := &models.RFQ{
			CreatorID:   buyer.ID,
			Title:       titles[rand.Intn(len(titles))],
			Description: "Looking for a reliable supplier. Please quote your best price including delivery to our premises. Payment within 30 days of delivery.",
			Visibility:  models.RFQVisibilityPublic,
			Status:      models.RFQStatusOpen,
			BudgetHint:  &budget,
		}
		if rand.Intn(5) == 0 {
			rfq.Visibility = models.RFQVisibilityPrivate
		}

		if err := s.rfqRepo.Create(ctx, rfq, nil); err != nil {
			return err
		}

		if !rfq.IsPublic() {
			continue
		}

		// До пяти котировок на публичную заявку от разных поставщиков
		numQuotes := rand.Intn(6)
		perm := rand.Perm(len(vendors))
		for j := 0; j < numQuotes && j < len(vendors); j++ {
			vendor := vendors[perm[j]]
			var message *string
			if rand.Intn(2) == 0 {
				m := messages[rand.Intn(len(messages))]
				message = &m
			}
			quote := &models.Quote{
				RFQID:    rfq.ID,
				VendorID: vendor.ID,
				Amount:   float64(5000 + rand.Intn(500000)),
				Currency: models.DefaultCurrency,
				Timeline: timelines[rand.Intn(len(timelines))],
				Message:  message,
				Status:   models.QuoteStatusSubmitted,
			}
			if err := s.quoteRepo.Create(ctx, quote); err != nil {
				return err
			}
		}
	}

	return nil
}
