package services_test

import (
	"fmt"
	"testing"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// notificationFixture wires the notification service to real GORM
// repositories over an in-memory database, so the fan-out is exercised
// end to end from a genuinely checked-out order.
type notificationFixture struct {
	db        *gorm.DB
	orderRepo *repositories.GORMOrderRepository
	notifRepo *repositories.GORMNotificationRepository
	service   *services.NotificationService
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Inventory{},
		&models.Order{},
		&models.OrderItem{},
		&models.SellerNotification{},
		&models.UserNotification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	notifRepo := repositories.NewGORMNotificationRepository(db)
	return &notificationFixture{
		db:        db,
		orderRepo: orderRepo,
		notifRepo: notifRepo,
		service:   services.NewNotificationService(orderRepo, notifRepo),
	}
}

func (f *notificationFixture) seedUser(t *testing.T, id, role string) {
	t.Helper()
	user := models.User{ID: id, Name: "User " + id, Username: "u-" + id,
		Email: id + "@example.com", Password: "x", Role: role}
	assert.NoError(t, f.db.Create(&user).Error)
}

// seedVariant creates a product chain under the given seller and returns
// the variant and inventory IDs.
func (f *notificationFixture) seedVariant(t *testing.T, sellerID, suffix string, price float64, stock int) (string, string) {
	t.Helper()
	category := models.Category{ID: "cat-" + suffix, Name: "Clothing"}
	assert.NoError(t, f.db.Create(&category).Error)
	product := models.Product{ID: "prod-" + suffix, Name: "Kemeja " + suffix,
		SellerID: sellerID, CategoryID: category.ID}
	assert.NoError(t, f.db.Create(&product).Error)
	variant := models.ProductVariant{ID: "var-" + suffix, ProductID: product.ID,
		Color: "Merah", Price: price, SKU: "KEM-" + suffix}
	assert.NoError(t, f.db.Create(&variant).Error)
	inventory := models.Inventory{ID: "inv-" + suffix, ProductVariantID: variant.ID,
		Size: "M", Quantity: stock}
	assert.NoError(t, f.db.Create(&inventory).Error)
	return variant.ID, inventory.ID
}

// placeOrder builds a cart with the given lines and checks it out.
func (f *notificationFixture) placeOrder(t *testing.T, userID string, lines ...[3]interface{}) *models.Order {
	t.Helper()
	cart, err := f.orderRepo.GetOrCreateCart(userID)
	assert.NoError(t, err)
	for _, line := range lines {
		variantID := line[0].(string)
		inventoryID := line[1].(string)
		quantity := line[2].(int)
		var variant models.ProductVariant
		assert.NoError(t, f.db.First(&variant, "id = ?", variantID).Error)
		assert.NoError(t, f.orderRepo.AddCartItem(cart.ID, variantID, inventoryID, quantity, variant.Price))
	}
	order, err := f.orderRepo.CheckoutCart(userID, models.CheckoutInfo{
		ShippingAddress: "Jl. X", PaymentMethod: "bank_transfer",
	})
	assert.NoError(t, err)
	return order
}

func TestNotificationService_NotifyNewOrder_FanOutPerSeller(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedUser(t, "buyer-1", models.RoleUser)
	f.seedUser(t, "seller-a", models.RoleSeller)
	f.seedUser(t, "seller-b", models.RoleSeller)

	// Seller A owns two lines, seller B one.
	varA1, invA1 := f.seedVariant(t, "seller-a", "a1", 150000, 5)
	varA2, invA2 := f.seedVariant(t, "seller-a", "a2", 50000, 5)
	varB1, invB1 := f.seedVariant(t, "seller-b", "b1", 75000, 5)

	order := f.placeOrder(t, "buyer-1",
		[3]interface{}{varA1, invA1, 1},
		[3]interface{}{varA2, invA2, 1},
		[3]interface{}{varB1, invB1, 1},
	)

	assert.NoError(t, f.service.NotifyNewOrder(order.ID))

	inboxA, err := f.service.GetSellerInbox("seller-a")
	assert.NoError(t, err)
	notificationsA := inboxA.Data.([]models.SellerNotification)
	assert.Len(t, notificationsA, 1, "one notification per seller per order")
	assert.Equal(t, order.ID, notificationsA[0].OrderID)
	assert.Equal(t, "New Order Received", notificationsA[0].Title)
	assert.Equal(t, "You have received a new order with 2 item(s) worth Rp 200.000", notificationsA[0].Message)
	assert.False(t, notificationsA[0].IsRead)
	assert.EqualValues(t, 1, inboxA.TotalUnread)

	inboxB, err := f.service.GetSellerInbox("seller-b")
	assert.NoError(t, err)
	notificationsB := inboxB.Data.([]models.SellerNotification)
	assert.Len(t, notificationsB, 1)
	assert.Equal(t, "You have received a new order with 1 item(s) worth Rp 75.000", notificationsB[0].Message)

	userInbox, err := f.service.GetUserInbox("buyer-1")
	assert.NoError(t, err)
	userNotifications := userInbox.Data.([]models.UserNotification)
	assert.Len(t, userNotifications, 1, "the buyer gets one confirmation for the whole order")
	assert.Equal(t, "Order Confirmation", userNotifications[0].Title)
	assert.Equal(t, "Your order with 3 item(s) worth Rp 275.000 has been received by the seller.", userNotifications[0].Message)
}

func TestNotificationService_NotifyNewOrder_SkipsBrokenSellerChain(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedUser(t, "buyer-1", models.RoleUser)
	f.seedUser(t, "seller-a", models.RoleSeller)

	varA, invA := f.seedVariant(t, "seller-a", "a1", 100000, 5)
	varX, invX := f.seedVariant(t, "seller-a", "x1", 40000, 5)
	order := f.placeOrder(t, "buyer-1",
		[3]interface{}{varA, invA, 2},
		[3]interface{}{varX, invX, 1},
	)

	// Break the second line's chain after checkout.
	assert.NoError(t, f.db.Delete(&models.ProductVariant{}, "id = ?", varX).Error)

	assert.NoError(t, f.service.NotifyNewOrder(order.ID))

	inbox, err := f.service.GetSellerInbox("seller-a")
	assert.NoError(t, err)
	notifications := inbox.Data.([]models.SellerNotification)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "You have received a new order with 1 item(s) worth Rp 200.000", notifications[0].Message,
		"the broken line is dropped from the seller summary")
}

func TestNotificationService_NotifyNewOrder_UnknownOrder(t *testing.T) {
	f := newNotificationFixture(t)
	assert.Error(t, f.service.NotifyNewOrder("missing"))
}

func TestNotificationService_NotifyOrderStatusUpdate(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedUser(t, "buyer-1", models.RoleUser)

	order := &models.Order{ID: "order-1", UserID: "buyer-1", Status: models.StatusPending}
	assert.NoError(t, f.service.NotifyOrderStatusUpdate(order, models.StatusShipped))

	inbox, err := f.service.GetUserInbox("buyer-1")
	assert.NoError(t, err)
	notifications := inbox.Data.([]models.UserNotification)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "Order Status Update", notifications[0].Title)
	assert.Equal(t, "Your order status has been updated to: shipped", notifications[0].Message)
}

func TestNotificationService_InboxReadAndDelete(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedUser(t, "seller-a", models.RoleSeller)

	notification := &models.SellerNotification{
		SellerID: "seller-a", OrderID: "order-1",
		Title: "New Order Received", Message: "x",
	}
	assert.NoError(t, f.notifRepo.CreateSellerNotification(notification))

	inbox, err := f.service.GetSellerInbox("seller-a")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, inbox.TotalUnread)

	// Marking read is scoped to the owner.
	_, err = f.service.MarkSellerNotificationRead(notification.ID, "someone-else")
	assert.Error(t, err)

	read, err := f.service.MarkSellerNotificationRead(notification.ID, "seller-a")
	assert.NoError(t, err)
	assert.True(t, read.IsRead)

	inbox, err = f.service.GetSellerInbox("seller-a")
	assert.NoError(t, err)
	assert.Zero(t, inbox.TotalUnread)

	assert.Error(t, f.service.DeleteSellerNotification(notification.ID, "someone-else"))
	assert.NoError(t, f.service.DeleteSellerNotification(notification.ID, "seller-a"))

	inbox, err = f.service.GetSellerInbox("seller-a")
	assert.NoError(t, err)
	assert.Empty(t, inbox.Data.([]models.SellerNotification))
}

func TestNotificationService_InboxLimit(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedUser(t, "buyer-1", models.RoleUser)

	for i := 0; i < 13; i++ {
		notification := &models.UserNotification{
			UserID: "buyer-1", OrderID: fmt.Sprintf("order-%d", i),
			Title: "Order Confirmation", Message: "x",
		}
		assert.NoError(t, f.notifRepo.CreateUserNotification(notification))
	}

	inbox, err := f.service.GetUserInbox("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, inbox.Data.([]models.UserNotification), 10)
	assert.EqualValues(t, 13, inbox.TotalUnread, "unread count covers the whole inbox, not just the page")
}
