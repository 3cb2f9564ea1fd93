// Command import loads legacy Excel exports of products and orders into
// the database. Legacy order rows carry their items in the flat article
// encoding and use the old Russian status vocabulary; both are
// normalized here so the application only ever sees canonical data.
package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/shoestore/codec"
	"github.com/shoestore/config"
	"github.com/shoestore/database"
	"github.com/shoestore/models"
	"github.com/shoestore/store"
)

// legacyStatuses maps the historical Russian status vocabulary (both
// lowercase and capitalized forms appeared in exports) onto the
// canonical enumeration.
var legacyStatuses = map[string]models.OrderStatus{
	"новый":       models.OrderNew,
	"в обработке": models.OrderProcessing,
	"выполнен":    models.OrderFulfilled,
	"завершен":    models.OrderFulfilled,
	"отменен":     models.OrderCancelled,
}

func main() {
	var (
		productsFile = flag.String("products", "", "Excel file with legacy products")
		ordersFile   = flag.String("orders", "", "Excel file with legacy orders")
	)
	flag.Parse()

	if *productsFile == "" && *ordersFile == "" {
		logrus.Fatal("Nothing to import: pass -products and/or -orders")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := database.InitializeWithOptions(&cfg.Database, true); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	if err := database.AutoMigrate(database.DB); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// One transaction for the whole import: a failure mid-file leaves
	// the database untouched.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if *productsFile != "" {
			if err := importProducts(tx, *productsFile); err != nil {
				return fmt.Errorf("product import: %w", err)
			}
		}
		if *ordersFile != "" {
			if err := importOrders(tx, *ordersFile); err != nil {
				return fmt.Errorf("order import: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("Import failed, database rolled back")
	}

	logrus.Info("Import completed")
}

// importProducts reads rows of: article, name, category, manufacturer,
// supplier, price, unit, stock, discount, description.
func importProducts(tx *gorm.DB, path string) error {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return err
	}
	if len(file.Sheets) == 0 {
		return errors.New("workbook has no sheets")
	}

	refs := store.NewReferenceStore(tx)
	sheet := file.Sheets[0]
	imported := 0
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		cell := func(idx int) string {
			if idx < len(row.Cells) {
				return strings.TrimSpace(row.Cells[idx].String())
			}
			return ""
		}

		article := cell(0)
		name := cell(1)
		if article == "" || name == "" {
			continue
		}
		if strings.Contains(article, ",") {
			// Such an article could never round-trip through the flat
			// order-line encoding.
			logrus.WithField("article", article).Warn("Article contains a comma, skipping row")
			continue
		}

		var existing models.Product
		err := tx.Where("article = ?", article).First(&existing).Error
		if err == nil {
			logrus.WithField("article", article).Info("Product already exists, skipping")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category, err := refs.GetOrCreateCategory(defaultString(cell(2), "Uncategorized"))
		if err != nil {
			return err
		}
		manufacturer, err := refs.GetOrCreateManufacturer(defaultString(cell(3), "Unknown"))
		if err != nil {
			return err
		}
		supplier, err := refs.GetOrCreateSupplier(defaultString(cell(4), "Unknown"))
		if err != nil {
			return err
		}

		price, err := decimal.NewFromString(cell(5))
		if err != nil || price.IsNegative() {
			logrus.WithField("article", article).Warn("Bad price, skipping row")
			continue
		}
		stock, _ := strconv.Atoi(cell(7))
		if stock < 0 {
			stock = 0
		}
		discount, _ := strconv.ParseFloat(cell(8), 64)
		if discount < 0 || discount > 100 {
			discount = 0
		}

		product := models.Product{
			Article:         article,
			Name:            name,
			CategoryID:      category.CategoryID,
			ManufacturerID:  manufacturer.ManufacturerID,
			SupplierID:      supplier.SupplierID,
			Price:           price,
			Unit:            defaultString(cell(6), "pair"),
			StockQuantity:   stock,
			DiscountPercent: discount,
		}
		if desc := cell(9); desc != "" {
			product.Description = &desc
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		imported++
	}

	logrus.WithField("count", imported).Info("Imported products")
	return nil
}

// importOrders reads rows of: article encoding, status, pickup address,
// order date, delivery date, pickup code.
func importOrders(tx *gorm.DB, path string) error {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return err
	}
	if len(file.Sheets) == 0 {
		return errors.New("workbook has no sheets")
	}

	sheet := file.Sheets[0]
	imported := 0
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		cell := func(idx int) string {
			if idx < len(row.Cells) {
				return strings.TrimSpace(row.Cells[idx].String())
			}
			return ""
		}

		articleField := cell(0)
		if articleField == "" {
			continue
		}

		status, err := normalizeStatus(cell(1))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"row":    i + 1,
				"status": cell(1),
			}).Warn("Unknown order status, skipping row")
			continue
		}

		orderDate := parseLegacyDate(cell(3))
		if orderDate.IsZero() {
			orderDate = time.Now()
		}

		order := models.Order{
			Status:        status,
			PickupAddress: cell(2),
			PickupCode:    cell(5),
			OrderDate:     orderDate,
		}
		if d := parseLegacyDate(cell(4)); !d.IsZero() {
			order.DeliveryDate = &d
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := importOrderItems(tx, order.OrderID, articleField); err != nil {
			return err
		}
		imported++
	}

	logrus.WithField("count", imported).Info("Imported orders")
	return nil
}

// importOrderItems decodes the flat article field into normalized order
// items. A malformed encoding is a data-quality issue: the order is
// kept with zero items and the event is logged, never fatal.
func importOrderItems(tx *gorm.DB, orderID uint, articleField string) error {
	items, err := codec.Decode(articleField)
	if errors.Is(err, codec.ErrMalformedEncoding) {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"article":  articleField,
		}).Warn("Malformed article encoding, order imported without items")
		return nil
	}
	if err != nil {
		return err
	}

	for _, it := range items {
		var product models.Product
		err := tx.Where("article = ?", it.Article).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"order_id": orderID,
				"article":  it.Article,
			}).Warn("Unknown product article, item skipped")
			continue
		}
		if err != nil {
			return err
		}

		item := models.OrderItem{
			OrderID:   orderID,
			ProductID: product.ProductID,
			Quantity:  it.Quantity,
			Price:     product.EffectivePrice(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeStatus(raw string) (models.OrderStatus, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return models.OrderNew, nil
	}
	if status := models.OrderStatus(s); status.Valid() {
		return status, nil
	}
	if status, ok := legacyStatuses[s]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// legacyDateFormats cover the mix of formats seen in old exports.
var legacyDateFormats = []string{
	"02.01.2006",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
}

func parseLegacyDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range legacyDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
