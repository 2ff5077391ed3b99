package distribution

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-splitter/internal/parsing"
	"github.com/zombor/receipt-splitter/internal/pdftext"
)

// IDGenerator generates unique identifiers for receipts and distributions
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates 10-character nanoids
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return gonanoid.Must(10)
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt parsing and distribution operations
type Service struct {
	db          DB
	parser      *parsing.Parser
	pdf         pdftext.Extractor
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, parser *parsing.Parser, pdf pdftext.Extractor, storage Storage) *Service {
	return &Service{
		db:          db,
		parser:      parser,
		pdf:         pdf,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, parser *parsing.Parser, pdf pdftext.Extractor, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		parser:      parser,
		pdf:         pdf,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ParseText parses pasted receipt text and returns a fresh receipt ID with
// the extracted item list. The item list may be empty for text neither
// extraction stage recognizes; that is not an error.
func (s *Service) ParseText(receiptText string) (string, *parsing.Receipt, error) {
	receipt := s.parser.Parse(receiptText)

	if err := parsing.ValidateReceipt(receipt); err != nil {
		return "", nil, fmt.Errorf("validating parsed output: %w", err)
	}

	return s.idGenerator.Generate(), receipt, nil
}

// ParsePDF extracts the text of an uploaded PDF receipt and parses it. The
// upload is spooled to storage for the duration of the call and removed
// afterwards, including on extraction failure.
func (s *Service) ParsePDF(filename string, data []byte) (string, *parsing.Receipt, error) {
	id := s.idGenerator.Generate()

	spooledPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return "", nil, fmt.Errorf("saving upload: %w", err)
	}

	text, err := s.pdf.ExtractText(data)
	if err != nil {
		slog.Error("failed to extract text from PDF",
			"filename", filename,
			"file_size", len(data),
			"error", err,
		)
		s.removeSpooled(spooledPath)
		return "", nil, fmt.Errorf("extracting text from PDF: %w", err)
	}

	receipt := s.parser.Parse(text)

	if err := parsing.ValidateReceipt(receipt); err != nil {
		s.removeSpooled(spooledPath)
		return "", nil, fmt.Errorf("validating parsed output: %w", err)
	}

	s.removeSpooled(spooledPath)

	return id, receipt, nil
}

// removeSpooled deletes a spooled upload, logging rather than failing; a
// leftover spool file is harmless
func (s *Service) removeSpooled(path string) {
	if err := s.storage.Delete(path); err != nil {
		slog.Warn("failed to remove spooled upload", "path", path, "error", err)
	}
}

// SaveDistribution computes each user's share and persists the result. An
// item's price is divided equally among its assigned users; per-user
// totals are accumulated with decimal arithmetic and rounded to cents once
// after summation.
func (s *Service) SaveDistribution(receiptName string, totalAmount float64, items []Item, users []User) (*Distribution, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users found in distribution data")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items found in distribution data")
	}
	if totalAmount == 0 {
		return nil, fmt.Errorf("no total amount found in distribution data")
	}

	if receiptName == "" {
		receiptName = "Walmart Receipt"
	}

	dist := &Distribution{
		ID:          s.idGenerator.Generate(),
		ReceiptName: receiptName,
		TotalAmount: totalAmount,
		Items:       items,
		Users:       users,
		Shares:      computeShares(items, users),
		CreatedAt:   s.timeSource.Now(),
	}

	if err := s.db.SaveDistribution(dist); err != nil {
		return nil, fmt.Errorf("saving distribution: %w", err)
	}

	slog.Debug("distribution saved", "id", dist.ID, "users", len(users))
	return dist, nil
}

// computeShares splits each item's price equally among its assigned users
func computeShares(items []Item, users []User) []UserShare {
	shares := make([]UserShare, 0, len(users))
	for _, user := range users {
		total := decimal.Zero
		userItems := make([]ItemShare, 0)

		for _, item := range items {
			if len(item.Users) == 0 || !assignedTo(item, user.ID) {
				continue
			}
			share := decimal.NewFromFloat(item.Price).Div(decimal.NewFromInt(int64(len(item.Users))))
			total = total.Add(share)
			userItems = append(userItems, ItemShare{
				Name:  item.Name,
				Price: item.Price,
				Share: share.Round(2).InexactFloat64(),
			})
		}

		shares = append(shares, UserShare{
			UserID:   user.ID,
			UserName: user.Name,
			Amount:   total.Round(2).InexactFloat64(),
			Items:    userItems,
		})
	}
	return shares
}

func assignedTo(item Item, userID string) bool {
	for _, id := range item.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// GetDistribution retrieves a distribution by ID
func (s *Service) GetDistribution(id string) (*Distribution, error) {
	dist, err := s.db.GetDistribution(id)
	if err != nil {
		return nil, fmt.Errorf("getting distribution: %w", err)
	}
	return dist, nil
}

// ListDistributions returns all distributions, newest first
func (s *Service) ListDistributions() ([]*Distribution, error) {
	distributions, err := s.db.ListDistributions()
	if err != nil {
		return nil, fmt.Errorf("listing distributions: %w", err)
	}
	return distributions, nil
}

// UserTotal is one user's aggregate spend
type UserTotal struct {
	UserName string  `json:"user_name"`
	Amount   float64 `json:"amount"`
}

// SpendingReport aggregates per-user spending over the trailing 30 days
type SpendingReport struct {
	UserTotals []UserTotal                   `json:"user_totals"`
	Weekly     map[string]map[string]float64 `json:"weekly"`
	Monthly    map[string]map[string]float64 `json:"monthly"`
}

// Analytics computes per-user totals plus weekly and monthly per-user
// buckets from distributions created in the trailing 30 days. Totals are
// sorted highest spender first.
func (s *Service) Analytics() (*SpendingReport, error) {
	distributions, err := s.db.ListDistributions()
	if err != nil {
		return nil, fmt.Errorf("listing distributions: %w", err)
	}

	cutoff := s.timeSource.Now().AddDate(0, 0, -30)

	totals := make(map[string]decimal.Decimal)
	weekly := make(map[string]map[string]float64)
	monthly := make(map[string]map[string]float64)

	for _, dist := range distributions {
		if dist.CreatedAt.Before(cutoff) {
			continue
		}

		month := dist.CreatedAt.Format("2006-01")
		year, week := dist.CreatedAt.ISOWeek()
		weekKey := fmt.Sprintf("%d-W%02d", year, week)

		for _, share := range dist.Shares {
			totals[share.UserName] = totals[share.UserName].Add(decimal.NewFromFloat(share.Amount))
			addToBucket(monthly, month, share.UserName, share.Amount)
			addToBucket(weekly, weekKey, share.UserName, share.Amount)
		}
	}

	userTotals := make([]UserTotal, 0, len(totals))
	for name, amount := range totals {
		userTotals = append(userTotals, UserTotal{
			UserName: name,
			Amount:   amount.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(userTotals, func(i, j int) bool {
		if userTotals[i].Amount != userTotals[j].Amount {
			return userTotals[i].Amount > userTotals[j].Amount
		}
		return userTotals[i].UserName < userTotals[j].UserName
	})

	return &SpendingReport{
		UserTotals: userTotals,
		Weekly:     weekly,
		Monthly:    monthly,
	}, nil
}

func addToBucket(buckets map[string]map[string]float64, key, userName string, amount float64) {
	if buckets[key] == nil {
		buckets[key] = make(map[string]float64)
	}
	buckets[key][userName] += amount
}
