package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Liamshmuel20/Rant.GO/config"
	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/pkg/logger"
)

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("not allowed for this user")
	ErrProfileIncomplete = errors.New("user profile incomplete")
	ErrDateConflict      = errors.New("requested dates conflict with an active rental")
	ErrBadPaymentMethod  = errors.New("unknown payment method")
	ErrChatClosed        = errors.New("chat is available only for active contracts")
)

// RentalService orchestrates lifecycle transitions. Every transition
// re-checks its status guard and performs all its record writes inside
// one store transaction, so a retried or double-clicked action either
// fails the guard or happens exactly once.
type RentalService struct {
	store  *Store
	mailer *Mailer
	cfg    *config.Config
}

func NewRentalService(store *Store, mailer *Mailer, cfg *config.Config) *RentalService {
	return &RentalService{store: store, mailer: mailer, cfg: cfg}
}

// SubmitRequestInput carries what the tenant fills in the request form.
type SubmitRequestInput struct {
	ProductID   string
	TenantName  string
	TenantID    string
	TenantPhone string
	StartDate   time.Time
	EndDate     time.Time
	Message     string
}

// SubmitRequest creates a pending rental request after checking the
// tenant's profile and the product's availability. No write happens if
// the dates conflict.
func (s *RentalService) SubmitRequest(ctx context.Context, tenant *model.User, in SubmitRequestInput) (*model.RentalRequest, error) {
	if in.TenantName == "" || in.TenantID == "" || in.TenantPhone == "" {
		return nil, ErrProfileIncomplete
	}
	if _, err := lifecycle.RentalDays(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	product, err := s.store.GetProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	contracts, err := s.store.ListContractsForProduct(product.ID)
	if err != nil {
		return nil, err
	}
	if lifecycle.HasConflict(in.StartDate, in.EndDate, contracts) {
		return nil, ErrDateConflict
	}

	request := &model.RentalRequest{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		LandlordEmail: product.OwnerEmail,
		TenantName:    in.TenantName,
		TenantID:      in.TenantID,
		TenantEmail:   tenant.Email,
		TenantPhone:   in.TenantPhone,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Message:       in.Message,
		Status:        model.RequestPending,
	}

	err = s.store.Transaction(func(tx *Store) error {
		if err := tx.CreateRequest(request); err != nil {
			return err
		}
		return tx.CreateNotification(&model.Notification{
			ID:        uuid.New().String(),
			UserEmail: product.OwnerEmail,
			Title:     "בקשת השכרה חדשה",
			Message:   fmt.Sprintf("התקבלה בקשה להשכרת %s מאת %s", product.Title, in.TenantName),
			Type:      model.NotificationRentalRequest,
			RelatedID: request.ID,
			ActionURL: "/RentalRequests",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "rental request submitted",
		"request_id", request.ID, "product_id", product.ID, "tenant", tenant.Email)
	return request, nil
}

// ApproveRequest moves a pending request to approved_awaiting_payment,
// creating the contract and payment snapshot. The status guard runs
// inside the transaction, so approving the same request twice creates
// exactly one contract.
func (s *RentalService) ApproveRequest(ctx context.Context, landlordEmail, requestID string) (*model.Contract, error) {
	var contract *model.Contract

	err := s.store.Transaction(func(tx *Store) error {
		request, err := tx.GetRequest(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}
		if request.LandlordEmail != landlordEmail {
			return ErrForbidden
		}

		nextStatus, err := lifecycle.NextRequestStatus(request.Status, lifecycle.EventApproveRequest)
		if err != nil {
			return err
		}

		product, err := tx.GetProduct(request.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}

		quote, err := lifecycle.NewQuote(request.StartDate, request.EndDate,
			product.PricePerDay, s.cfg.Pricing.CommissionBps)
		if err != nil {
			return err
		}

		landlordPhone := ""
		if landlord, err := tx.GetUserByEmail(landlordEmail); err != nil {
			return err
		} else if landlord != nil {
			landlordPhone = landlord.Phone
		}

		contract = &model.Contract{
			ID:                       uuid.New().String(),
			ProductID:                product.ID,
			ProductDescription:       product.Title,
			LandlordName:             product.OwnerName,
			LandlordID:               product.OwnerIDNumber,
			LandlordEmail:            request.LandlordEmail,
			LandlordPhone:            landlordPhone,
			TenantName:               request.TenantName,
			TenantID:                 request.TenantID,
			TenantEmail:              request.TenantEmail,
			TenantPhone:              request.TenantPhone,
			DamageCompensationAmount: product.DamageCompensationAmount,
			StartDate:                request.StartDate,
			EndDate:                  request.EndDate,
			TotalPrice:               quote.TotalPrice,
			CommissionBps:            quote.CommissionBps,
			CommissionAmount:         quote.CommissionAmount,
			LandlordPayout:           quote.LandlordPayout,
			Status:                   model.ContractAwaitingPayment,
		}
		contract.ContractText = RenderContractText(contract, quote)

		if err := tx.CreateContract(contract); err != nil {
			return err
		}

		if err := tx.CreatePayment(&model.Payment{
			ID:                     uuid.New().String(),
			ContractID:             contract.ID,
			TenantEmail:            request.TenantEmail,
			LandlordEmail:          request.LandlordEmail,
			TotalAmount:            quote.TotalPrice,
			CommissionAmount:       quote.CommissionAmount,
			LandlordAmount:         quote.LandlordPayout,
			TenantPaymentStatus:    model.TenantPaymentAwaiting,
			LandlordReceivedStatus: model.LandlordReceivedAwaiting,
		}); err != nil {
			return err
		}

		// The conditional update is the real guard: under concurrent
		// approvals only one writer matches the pending row, the other
		// rolls back its contract and payment with the transaction.
		ok, err := tx.UpdateRequestIfStatus(request.ID, request.Status, map[string]any{
			"status":            nextStatus,
			"total_amount":      quote.TotalPrice,
			"commission_amount": quote.CommissionAmount,
			"landlord_amount":   quote.LandlordPayout,
			"contract_id":       contract.ID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: request.Status, Event: lifecycle.EventApproveRequest}
		}

		notifications := []*model.Notification{
			{
				UserEmail: s.cfg.Admin.Email,
				Title:     "בקשת השכרה חדשה אושרה",
				Message:   fmt.Sprintf("בקשה להשכרת %s אושרה ונוצר חוזה. ממתין לתשלום השוכר.", product.Title),
				Type:      model.NotificationApproval,
				RelatedID: contract.ID,
				ActionURL: "/AdminDashboard",
			},
			{
				UserEmail: request.TenantEmail,
				Title:     "בקשת ההשכרה אושרה!",
				Message:   fmt.Sprintf("בקשתך להשכרת %s אושרה! כעת עליך לבצע תשלום של %s₪", product.Title, shekels(quote.TotalPrice)),
				Type:      model.NotificationApproval,
				RelatedID: contract.ID,
				ActionURL: "/PaymentSelection?requestId=" + request.ID,
			},
			{
				UserEmail: request.LandlordEmail,
				Title:     "בקשה אושרה בהצלחה",
				Message:   fmt.Sprintf("אישרת בהצלחה את בקשת ההשכרה עבור %s. השוכר יקבל הודעה לבצע תשלום.", product.Title),
				Type:      model.NotificationStatusUpdate,
				RelatedID: contract.ID,
			},
		}
		for _, n := range notifications {
			n.ID = uuid.New().String()
			if err := tx.CreateNotification(n); err != nil {
				return err
			}
		}

		systemMessage := fmt.Sprintf(
			"מזל טוב! ההשכרה אושרה ונוצר חוזה.\n\nהשוכר צריך כעת לבצע תשלום של %s₪.\nלאחר התשלום והאישור ממנהלת המערכת, ההשכרה תהפוך לפעילה.\n\nהצ'אט זמין כעת לתיאומים נוספים.",
			shekels(quote.TotalPrice))
		for _, recipient := range []string{request.TenantEmail, request.LandlordEmail} {
			if err := tx.CreateChatMessage(&model.ChatMessage{
				ID:            uuid.New().String(),
				ContractID:    contract.ID,
				SenderEmail:   model.SystemSender,
				ReceiverEmail: recipient,
				Message:       systemMessage,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "rental request approved",
		"request_id", requestID, "contract_id", contract.ID, "total", contract.TotalPrice)
	return contract, nil
}

// RejectRequest moves a pending request to rejected. No contract or
// payment is ever created on this path.
func (s *RentalService) RejectRequest(ctx context.Context, landlordEmail, requestID string) error {
	err := s.store.Transaction(func(tx *Store) error {
		request, err := tx.GetRequest(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}
		if request.LandlordEmail != landlordEmail {
			return ErrForbidden
		}

		nextStatus, err := lifecycle.NextRequestStatus(request.Status, lifecycle.EventRejectRequest)
		if err != nil {
			return err
		}
		ok, err := tx.UpdateRequestIfStatus(request.ID, request.Status, map[string]any{"status": nextStatus})
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: request.Status, Event: lifecycle.EventRejectRequest}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "rental request rejected", "request_id", requestID)
	return nil
}

// ConfirmPayment records the tenant's manual bit/bank transfer and
// hands the transaction over to the admin for final approval. The id
// names a rental request or, for contracts opened directly from a
// product, the contract itself.
func (s *RentalService) ConfirmPayment(ctx context.Context, tenantEmail, id, method string) error {
	if method != model.PaymentMethodBit && method != model.PaymentMethodBank {
		return ErrBadPaymentMethod
	}

	var (
		contract     *model.Contract
		productTitle string
	)

	err := s.store.Transaction(func(tx *Store) error {
		request, err := tx.GetRequest(id)
		if err != nil {
			return err
		}

		var nextRequestStatus string
		if request != nil {
			if request.TenantEmail != tenantEmail {
				return ErrForbidden
			}
			nextRequestStatus, err = lifecycle.NextRequestStatus(request.Status, lifecycle.EventConfirmPayment)
			if err != nil {
				return err
			}
			contract, err = tx.GetContract(request.ContractID)
			productTitle = request.ProductTitle
		} else {
			contract, err = tx.GetContract(id)
		}
		if err != nil {
			return err
		}
		if contract == nil {
			return ErrNotFound
		}
		if request == nil {
			if contract.TenantEmail != tenantEmail {
				return ErrForbidden
			}
			productTitle = contract.ProductDescription
		}

		nextContractStatus, err := lifecycle.NextContractStatus(contract.Status, lifecycle.EventConfirmPayment)
		if err != nil {
			return err
		}

		payment, err := tx.GetPaymentByContract(contract.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		if payment == nil {
			// Direct contracts have no payment row until the tenant
			// pays; create it here from the frozen contract amounts.
			// The unique index on contract_id catches a racing create.
			if err := tx.CreatePayment(&model.Payment{
				ID:                     uuid.New().String(),
				ContractID:             contract.ID,
				TenantEmail:            contract.TenantEmail,
				LandlordEmail:          contract.LandlordEmail,
				TotalAmount:            contract.TotalPrice,
				CommissionAmount:       contract.CommissionAmount,
				LandlordAmount:         contract.LandlordPayout,
				TenantPaymentStatus:    model.TenantPaymentPaid,
				LandlordReceivedStatus: model.LandlordReceivedAwaiting,
				PaymentMethod:          method,
				TenantPaymentDate:      &now,
			}); err != nil {
				return err
			}
		} else if err := tx.UpdatePayment(payment.ID, map[string]any{
			"tenant_payment_status": model.TenantPaymentPaid,
			"payment_method":        method,
			"tenant_payment_date":   &now,
		}); err != nil {
			return err
		}

		ok, err := tx.UpdateContractIfStatus(contract.ID, contract.Status, map[string]any{"status": nextContractStatus})
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: contract.Status, Event: lifecycle.EventConfirmPayment}
		}
		if request != nil {
			ok, err := tx.UpdateRequestIfStatus(request.ID, request.Status, map[string]any{"status": nextRequestStatus})
			if err != nil {
				return err
			}
			if !ok {
				return &lifecycle.ErrTransition{Status: request.Status, Event: lifecycle.EventConfirmPayment}
			}
		}

		notifications := []*model.Notification{
			{
				UserEmail: s.cfg.Admin.Email,
				Title:     "תשלום ממתין לאישורך",
				Message: fmt.Sprintf("השוכר %s אישר תשלום של %s₪ עבור %s באמצעות %s. יש לוודא קבלת הכסף ולאשר.",
					contract.TenantName, shekels(contract.TotalPrice), productTitle, method),
				Type:      model.NotificationPayment,
				RelatedID: contract.ID,
				ActionURL: "/AdminDashboard",
			},
			{
				UserEmail: contract.TenantEmail,
				Title:     "התשלום נקלט",
				Message:   "אישור התשלום שלך התקבל וממתין לאישור מנהלת המערכת. תקבל הודעה כשההשכרה תהפוך לפעילה.",
				Type:      model.NotificationStatusUpdate,
				RelatedID: contract.ID,
			},
			{
				UserEmail: contract.LandlordEmail,
				Title:     "השוכר אישר תשלום",
				Message:   fmt.Sprintf("השוכר אישר שביצע תשלום עבור %s. ממתין לאישור מנהלת המערכת.", productTitle),
				Type:      model.NotificationStatusUpdate,
				RelatedID: contract.ID,
			},
		}
		for _, n := range notifications {
			n.ID = uuid.New().String()
			if err := tx.CreateNotification(n); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Email is not transactional; send after commit, best effort.
	subject := fmt.Sprintf("תשלום ממתין לאישור - %s", productTitle)
	body := fmt.Sprintf(
		"השוכר %s (%s, טלפון %s) אישר תשלום של %s₪ עבור %s בשיטת %s.\nפרטי העברה: %s\nיש לוודא קבלת הכסף ולאשר בדף הבקרה.",
		contract.TenantName, contract.TenantEmail, contract.TenantPhone,
		shekels(contract.TotalPrice), productTitle, method, s.cfg.Admin.BankDetails)
	if err := s.mailer.Send(ctx, s.cfg.Admin.Email, subject, body); err != nil {
		logger.Error(ctx, "failed to email admin about payment", "error", err, "contract_id", contract.ID)
	}

	logger.Info(ctx, "tenant confirmed payment",
		"contract_id", contract.ID, "method", method)
	return nil
}

// AdminApprovePayment is the final transition: funds confirmed, the
// contract becomes active, both parties get each other's contact
// details, and the chat opens.
func (s *RentalService) AdminApprovePayment(ctx context.Context, paymentID string) error {
	var contract *model.Contract

	err := s.store.Transaction(func(tx *Store) error {
		payment, err := tx.GetPayment(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrNotFound
		}
		if payment.TenantPaymentStatus != model.TenantPaymentPaid ||
			payment.LandlordReceivedStatus != model.LandlordReceivedAwaiting {
			return &lifecycle.ErrTransition{Status: payment.LandlordReceivedStatus, Event: lifecycle.EventAdminApprove}
		}

		contract, err = tx.GetContract(payment.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return ErrNotFound
		}
		nextContractStatus, err := lifecycle.NextContractStatus(contract.Status, lifecycle.EventAdminApprove)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.UpdatePayment(payment.ID, map[string]any{
			"landlord_received_status":   model.LandlordReceivedApproved,
			"landlord_confirmation_date": &now,
		}); err != nil {
			return err
		}
		ok, err := tx.UpdateContractIfStatus(contract.ID, contract.Status, map[string]any{"status": nextContractStatus})
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: contract.Status, Event: lifecycle.EventAdminApprove}
		}

		// Requests created via the direct-contract path have no
		// linked request row; skip quietly then.
		var request model.RentalRequest
		res := tx.db.Where("contract_id = ?", contract.ID).First(&request)
		if res.Error == nil {
			next, err := lifecycle.NextRequestStatus(request.Status, lifecycle.EventAdminApprove)
			if err == nil {
				if err := tx.UpdateRequest(request.ID, map[string]any{"status": next}); err != nil {
					return err
				}
			}
		}

		landlordPhone := contract.LandlordPhone
		if landlordPhone == "" {
			landlordPhone = "לא זמין"
		}
		systemMessage := fmt.Sprintf(
			"התשלום אושר! ההשכרה כעת פעילה.\n\nפרטי קשר:\n• שוכר: %s - %s\n• משכיר: %s - %s\n\nהסכום של %s₪ יועבר למשכיר תוך 24-48 שעות.",
			contract.TenantName, contract.TenantPhone,
			contract.LandlordName, landlordPhone,
			shekels(payment.LandlordAmount))

		for _, recipient := range []string{contract.TenantEmail, contract.LandlordEmail} {
			if err := tx.CreateChatMessage(&model.ChatMessage{
				ID:            uuid.New().String(),
				ContractID:    contract.ID,
				SenderEmail:   model.SystemSender,
				ReceiverEmail: recipient,
				Message:       systemMessage,
			}); err != nil {
				return err
			}
		}

		notifications := []*model.Notification{
			{
				UserEmail: contract.TenantEmail,
				Title:     "ההשכרה פעילה!",
				Message: fmt.Sprintf("ההשכרה של %s פעילה כעת. פרטי המשכיר: %s - %s",
					contract.ProductDescription, contract.LandlordName, landlordPhone),
				Type:      model.NotificationApproval,
				RelatedID: contract.ID,
				ActionURL: "/Chat?contractId=" + contract.ID,
			},
			{
				UserEmail: contract.LandlordEmail,
				Title:     "ההשכרה פעילה!",
				Message: fmt.Sprintf("ההשכרה של %s פעילה כעת. פרטי השוכר: %s - %s",
					contract.ProductDescription, contract.TenantName, contract.TenantPhone),
				Type:      model.NotificationApproval,
				RelatedID: contract.ID,
				ActionURL: "/Chat?contractId=" + contract.ID,
			},
		}
		for _, n := range notifications {
			n.ID = uuid.New().String()
			if err := tx.CreateNotification(n); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "admin approved payment", "payment_id", paymentID, "contract_id", contract.ID)
	return nil
}

// DraftContractInput carries what a landlord fills when opening a
// contract directly from a product, skipping the request flow.
type DraftContractInput struct {
	ProductID  string
	TenantName string
	TenantID   string
	StartDate  time.Time
	EndDate    time.Time
}

// CreateDraftContract opens the signature sub-path: draft → tenant
// signs → landlord signs → awaiting payment. Financials are frozen
// here, at creation.
func (s *RentalService) CreateDraftContract(ctx context.Context, landlord *model.User, in DraftContractInput) (*model.Contract, error) {
	product, err := s.store.GetProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.OwnerEmail != landlord.Email {
		return nil, ErrForbidden
	}

	quote, err := lifecycle.NewQuote(in.StartDate, in.EndDate, product.PricePerDay, s.cfg.Pricing.CommissionBps)
	if err != nil {
		return nil, err
	}

	contract := &model.Contract{
		ID:                       uuid.New().String(),
		ProductID:                product.ID,
		ProductDescription:       product.Title + " - " + product.Description,
		LandlordName:             product.OwnerName,
		LandlordID:               product.OwnerIDNumber,
		LandlordEmail:            landlord.Email,
		LandlordPhone:            landlord.Phone,
		TenantName:               in.TenantName,
		TenantID:                 in.TenantID,
		DamageCompensationAmount: product.DamageCompensationAmount,
		StartDate:                in.StartDate,
		EndDate:                  in.EndDate,
		TotalPrice:               quote.TotalPrice,
		CommissionBps:            quote.CommissionBps,
		CommissionAmount:         quote.CommissionAmount,
		LandlordPayout:           quote.LandlordPayout,
		Status:                   model.ContractDraft,
	}
	contract.ContractText = RenderContractText(contract, quote)

	if err := s.store.CreateContract(contract); err != nil {
		return nil, err
	}

	logger.Info(ctx, "draft contract created", "contract_id", contract.ID, "product_id", product.ID)
	return contract, nil
}

// SignContract advances the signature sub-path for the calling party.
// The landlord's send moves draft to awaiting the tenant; each
// signature stamps its timestamp; the landlord's signature lands the
// contract in awaiting_payment.
func (s *RentalService) SignContract(ctx context.Context, user *model.User, contractID string, event lifecycle.Event) (*model.Contract, error) {
	var contract *model.Contract

	err := s.store.Transaction(func(tx *Store) error {
		var err error
		contract, err = tx.GetContract(contractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return ErrNotFound
		}

		party := contract.PartyOf(user.Email)
		switch event {
		case lifecycle.EventSendToTenant, lifecycle.EventLandlordSign:
			if party != "landlord" {
				return ErrForbidden
			}
		case lifecycle.EventTenantSign:
			// A draft contract may predate the tenant's account, so
			// the tenant binds their email on first signature.
			if contract.TenantEmail != "" && party != "tenant" {
				return ErrForbidden
			}
		default:
			return &lifecycle.ErrTransition{Status: contract.Status, Event: event}
		}

		next, err := lifecycle.NextContractStatus(contract.Status, event)
		if err != nil {
			return err
		}

		fields := map[string]any{"status": next}
		now := time.Now()
		switch event {
		case lifecycle.EventTenantSign:
			fields["tenant_signature_date"] = &now
			if contract.TenantEmail == "" {
				fields["tenant_email"] = user.Email
				fields["tenant_phone"] = user.Phone
			}
		case lifecycle.EventLandlordSign:
			fields["landlord_signature_date"] = &now
		}

		ok, err := tx.UpdateContractIfStatus(contract.ID, contract.Status, fields)
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: contract.Status, Event: event}
		}
		contract, err = tx.GetContract(contract.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract signature event", "contract_id", contractID, "event", string(event), "status", contract.Status)
	return contract, nil
}

// CancelContract aborts a contract anywhere on the signature path
// before it activates. Either party may cancel; once the rental is
// active it runs its course.
func (s *RentalService) CancelContract(ctx context.Context, user *model.User, contractID string) (*model.Contract, error) {
	var contract *model.Contract

	err := s.store.Transaction(func(tx *Store) error {
		var err error
		contract, err = tx.GetContract(contractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return ErrNotFound
		}
		party := contract.PartyOf(user.Email)
		if party == "" {
			return ErrForbidden
		}

		next, err := lifecycle.NextContractStatus(contract.Status, lifecycle.EventCancel)
		if err != nil {
			return err
		}
		ok, err := tx.UpdateContractIfStatus(contract.ID, contract.Status, map[string]any{"status": next})
		if err != nil {
			return err
		}
		if !ok {
			return &lifecycle.ErrTransition{Status: contract.Status, Event: lifecycle.EventCancel}
		}

		other := contract.TenantEmail
		if party == "tenant" {
			other = contract.LandlordEmail
		}
		if other != "" {
			if err := tx.CreateNotification(&model.Notification{
				ID:        uuid.New().String(),
				UserEmail: other,
				Title:     "החוזה בוטל",
				Message:   fmt.Sprintf("החוזה עבור %s בוטל על ידי %s.", contract.ProductDescription, user.FullName),
				Type:      model.NotificationStatusUpdate,
				RelatedID: contract.ID,
			}); err != nil {
				return err
			}
		}

		contract, err = tx.GetContract(contract.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract cancelled", "contract_id", contractID, "by", user.Email)
	return contract, nil
}

// PostChatMessage appends a chat message to an active contract and
// mails the admin a copy, as the operator moderates all conversations.
func (s *RentalService) PostChatMessage(ctx context.Context, user *model.User, contractID, text string) (*model.ChatMessage, error) {
	contract, err := s.store.GetContract(contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}

	party := contract.PartyOf(user.Email)
	if party == "" {
		return nil, ErrForbidden
	}
	if !lifecycle.ChatWritable(contract.Status) {
		return nil, ErrChatClosed
	}

	receiver := contract.TenantEmail
	senderName := contract.TenantName
	if party == "tenant" {
		receiver = contract.LandlordEmail
	} else {
		senderName = contract.LandlordName
	}

	message := &model.ChatMessage{
		ID:            uuid.New().String(),
		ContractID:    contract.ID,
		SenderEmail:   user.Email,
		ReceiverEmail: receiver,
		Message:       text,
	}
	if err := s.store.CreateChatMessage(message); err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("הודעה חדשה ב-Rant.GO בנוגע למוצר: %s", contract.ProductDescription)
	body := fmt.Sprintf("הודעה חדשה בשיחה בין %s לבין %s.\nהשולח: %s\nההודעה: %s",
		contract.LandlordName, contract.TenantName, senderName, text)
	if err := s.mailer.Send(ctx, s.cfg.Admin.Email, subject, body); err != nil {
		logger.Warn(ctx, "failed to email admin chat copy", "error", err, "contract_id", contract.ID)
	}

	return message, nil
}
