package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReminderService(stores *testutil.MockStores, publisher *testutil.MockPublisher, mailer *testutil.MockMailer) *ReminderService {
	svc := NewReminderService(NewSnapshotService(stores.Stores()), publisher, mailer)
	svc.now = clock
	return svc
}

func reminderUser(stores *testutil.MockStores, emailReminders bool) *domain.User {
	name := "Dana"
	user := &domain.User{ID: uuid.New(), Email: "dana@example.com", Name: &name}
	prefs := domain.DefaultPreferences()
	prefs.EmailReminders = emailReminders
	_ = stores.Preferences.Put(context.Background(), user.ID, prefs)
	return user
}

func TestRemind_SendsEventAndEmail(t *testing.T) {
	stores := testutil.NewMockStores()
	publisher := testutil.NewMockPublisher()
	mailer := testutil.NewMockMailer()
	user := reminderUser(stores, true)
	stores.Bills.Add(user.ID,
		&domain.Bill{Name: "Internet", Amount: amount("60"), DueDate: fixedNow.AddDate(0, 0, 2)},
		&domain.Bill{Name: "Paid", Amount: amount("60"), DueDate: fixedNow.AddDate(0, 0, 1), IsPaid: true},
	)
	svc := newTestReminderService(stores, publisher, mailer)

	sent, err := svc.Remind(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"bill.due"}, publisher.Types())

	reminder, ok := publisher.Events[0].Event.Payload.(BillReminder)
	require.True(t, ok)
	require.Len(t, reminder.Upcoming, 1)
	assert.Equal(t, "Internet", reminder.Upcoming[0].Bill.Name)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "dana@example.com", mailer.Sent[0].To)
	assert.Equal(t, "Upcoming bills", mailer.Sent[0].Subject)
	assert.Contains(t, mailer.Sent[0].Text, "Hi Dana")
	assert.Contains(t, mailer.Sent[0].Text, "Internet: $60.00 due in 2 days")
}

func TestRemind_EmailOptOut(t *testing.T) {
	stores := testutil.NewMockStores()
	publisher := testutil.NewMockPublisher()
	mailer := testutil.NewMockMailer()
	user := reminderUser(stores, false)
	stores.Bills.Add(user.ID, &domain.Bill{Name: "Water", Amount: amount("30"), DueDate: fixedNow.AddDate(0, 0, -4)})
	svc := newTestReminderService(stores, publisher, mailer)

	sent, err := svc.Remind(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, publisher.Events, 1)
	assert.Empty(t, mailer.Sent)
}

func TestRemind_Skips(t *testing.T) {
	t.Run("outside reminder hour", func(t *testing.T) {
		stores := testutil.NewMockStores()
		publisher := testutil.NewMockPublisher()
		user := &domain.User{ID: uuid.New(), Email: "x@example.com"}
		prefs := domain.DefaultPreferences()
		prefs.ReminderTime = "18:00"
		_ = stores.Preferences.Put(context.Background(), user.ID, prefs)
		stores.Bills.Add(user.ID, &domain.Bill{Name: "Rent", Amount: amount("900"), DueDate: fixedNow})
		svc := newTestReminderService(stores, publisher, testutil.NewMockMailer())

		sent, err := svc.Remind(context.Background(), user)
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, publisher.Events)
	})

	t.Run("nothing due", func(t *testing.T) {
		stores := testutil.NewMockStores()
		publisher := testutil.NewMockPublisher()
		user := reminderUser(stores, true)
		stores.Bills.Add(user.ID, &domain.Bill{Name: "Later", Amount: amount("10"), DueDate: fixedNow.AddDate(0, 0, 10)})
		svc := newTestReminderService(stores, publisher, testutil.NewMockMailer())

		sent, err := svc.Remind(context.Background(), user)
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, publisher.Events)
	})
}

func TestRemind_MailFailure(t *testing.T) {
	stores := testutil.NewMockStores()
	mailer := testutil.NewMockMailer()
	mailer.SendErr = errors.New("relay refused")
	user := reminderUser(stores, true)
	stores.Bills.Add(user.ID, &domain.Bill{Name: "Phone", Amount: amount("45"), DueDate: fixedNow})
	svc := newTestReminderService(stores, testutil.NewMockPublisher(), mailer)

	sent, err := svc.Remind(context.Background(), user)
	assert.True(t, sent)
	assert.ErrorIs(t, err, mailer.SendErr)
}

func TestRemind_UsesUTCHour(t *testing.T) {
	stores := testutil.NewMockStores()
	publisher := testutil.NewMockPublisher()
	user := reminderUser(stores, false)
	stores.Bills.Add(user.ID, &domain.Bill{Name: "Internet", Amount: amount("60"), DueDate: fixedNow.AddDate(0, 0, 2)})

	// 14:30 in +05:00 is 09:30 UTC, the default 09:00 reminder hour
	local := fixedNow.In(time.FixedZone("UTC+5", 5*60*60))
	require.Equal(t, 14, local.Hour())

	svc := newTestReminderService(stores, publisher, testutil.NewMockMailer())
	svc.now = func() time.Time { return local }

	sent, err := svc.Remind(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"bill.due"}, publisher.Types())
}
