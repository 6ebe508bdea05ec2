package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"

	"github.com/apex/log"
)

// engagement.go holds the request/offer lifecycle. Every function here that
// touches more than one table takes a *sql.Tx; the caller owns
// begin/commit/rollback so a partial failure never leaves the request and
// offer tables disagreeing.

type lockedRequest struct {
	PinID  int64
	CsrID  sql.NullInt64
	Title  string
	Status string
}

// lockRequest reads and locks the request row for the duration of the
// transaction.
func lockRequest(tx *sql.Tx, requestID int64) (*lockedRequest, error) {
	var req lockedRequest
	err := tx.QueryRow(`SELECT pin_id, csr_id, title, status FROM pin_requests
		WHERE id = ? FOR UPDATE`, requestID).
		Scan(&req.PinID, &req.CsrID, &req.Title, &req.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock request: %w", err)
	}
	return &req, nil
}

// DeclareInterest records a CSR's interest in an unassigned request and
// opens a Pending offer for the pair if none exists yet. A repeat call for
// the same pair reports already=true instead of erroring. The owning PIN is
// notified; the request itself does not change state.
func DeclareInterest(tx *sql.Tx, csrID, requestID int64, csrName string) (already bool, err error) {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return false, err
	}
	if req.CsrID.Valid {
		return false, ErrAlreadyAssigned
	}

	var existing int64
	err = tx.QueryRow(`SELECT id FROM csr_interests WHERE csr_id = ? AND request_id = ?`,
		csrID, requestID).Scan(&existing)
	if err == nil {
		return true, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check existing interest: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO csr_interests (csr_id, request_id) VALUES (?, ?)`,
		csrID, requestID); err != nil {
		return false, fmt.Errorf("failed to record interest: %w", err)
	}

	// A prior offer row from an earlier round (e.g. rejected after a
	// withdrawal) reopens as Pending so interest and offer stay in step.
	if _, err := tx.Exec(`INSERT INTO csr_offers (csr_id, request_id, status)
		VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE status = VALUES(status)`,
		csrID, requestID, models.OfferStatusPending); err != nil {
		return false, fmt.Errorf("failed to open offer: %w", err)
	}

	message := fmt.Sprintf("%s is interested in your request %q", csrName, req.Title)
	if err := AddNotification(tx, req.PinID, models.NotificationInterested, message, requestID); err != nil {
		return false, err
	}

	return false, nil
}

// WithdrawInterest removes the CSR's interest row and closes the paired
// offer as Rejected, notifying the owning PIN. If the caller is the
// assigned CSR the request reverts to Available with csr_id cleared, the
// same way CancelEngagement unwinds; a Pending request must never be left
// without a live offer.
func WithdrawInterest(tx *sql.Tx, csrID, requestID int64, csrName string) error {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM csr_interests WHERE csr_id = ? AND request_id = ?`,
		csrID, requestID)
	if err != nil {
		return fmt.Errorf("failed to withdraw interest: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE csr_offers SET status = ? WHERE csr_id = ? AND request_id = ?`,
		models.OfferStatusRejected, csrID, requestID); err != nil {
		return fmt.Errorf("failed to close offer: %w", err)
	}

	if req.CsrID.Valid && req.CsrID.Int64 == csrID {
		if _, err := tx.Exec(`UPDATE pin_requests SET csr_id = NULL, status = ? WHERE id = ?`,
			models.RequestStatusAvailable, requestID); err != nil {
			return fmt.Errorf("failed to revert request: %w", err)
		}
	}

	message := fmt.Sprintf("%s withdrew interest from your request %q", csrName, req.Title)
	return AddNotification(tx, req.PinID, models.NotificationInterested, message, requestID)
}

// AcceptOffer assigns the chosen CSR to the request as one atomic unit:
// the request moves to Pending with csr_id set, the winning offer becomes
// Accepted, every other offer becomes Rejected, the losers' interest rows
// are deleted, and winner/loser notifications are queued. The request row
// is locked first, so two concurrent accepts cannot both win.
func AcceptOffer(tx *sql.Tx, requestID, csrID int64) error {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return err
	}
	if req.CsrID.Valid {
		return ErrAlreadyAssigned
	}

	var offerID int64
	err = tx.QueryRow(`SELECT id FROM csr_offers WHERE csr_id = ? AND request_id = ?`,
		csrID, requestID).Scan(&offerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find offer: %w", err)
	}

	// Collect losers before mutating so their notifications can be queued.
	rows, err := tx.Query(`SELECT csr_id FROM csr_offers
		WHERE request_id = ? AND csr_id <> ? AND status = ?`,
		requestID, csrID, models.OfferStatusPending)
	if err != nil {
		return fmt.Errorf("failed to list competing offers: %w", err)
	}
	var losers []int64
	for rows.Next() {
		var loser int64
		if err := rows.Scan(&loser); err != nil {
			rows.Close()
			return err
		}
		losers = append(losers, loser)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE pin_requests SET csr_id = ?, status = ? WHERE id = ?`,
		csrID, models.RequestStatusPending, requestID); err != nil {
		return fmt.Errorf("failed to assign csr: %w", err)
	}

	if _, err := tx.Exec(`UPDATE csr_offers SET status = ? WHERE id = ?`,
		models.OfferStatusAccepted, offerID); err != nil {
		return fmt.Errorf("failed to accept offer: %w", err)
	}

	if _, err := tx.Exec(`UPDATE csr_offers SET status = ? WHERE request_id = ? AND csr_id <> ?`,
		models.OfferStatusRejected, requestID, csrID); err != nil {
		return fmt.Errorf("failed to reject competing offers: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM csr_interests WHERE request_id = ? AND csr_id <> ?`,
		requestID, csrID); err != nil {
		return fmt.Errorf("failed to clear competing interests: %w", err)
	}

	accepted := fmt.Sprintf("You were accepted for request %q", req.Title)
	if err := AddNotification(tx, csrID, models.NotificationAccepted, accepted, requestID); err != nil {
		return err
	}
	rejected := fmt.Sprintf("Another volunteer was chosen for request %q", req.Title)
	for _, loser := range losers {
		if err := AddNotification(tx, loser, models.NotificationRejected, rejected, requestID); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{"request": requestID, "csr": csrID, "rejected": len(losers)}).
		Info("csr accepted for request")
	return nil
}

// CancelEngagement ends a CSR's own engagement: the interest row goes away
// and the offer closes as Rejected. If this CSR was the assigned one, the
// request reverts to Available with csr_id cleared so the PIN can match
// again. The PIN is notified.
func CancelEngagement(tx *sql.Tx, csrID, requestID int64, csrName string) error {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE csr_offers SET status = ? WHERE csr_id = ? AND request_id = ?`,
		models.OfferStatusRejected, csrID, requestID)
	if err != nil {
		return fmt.Errorf("failed to close offer: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM csr_interests WHERE csr_id = ? AND request_id = ?`,
		csrID, requestID); err != nil {
		return fmt.Errorf("failed to remove interest: %w", err)
	}

	if req.CsrID.Valid && req.CsrID.Int64 == csrID {
		if _, err := tx.Exec(`UPDATE pin_requests SET csr_id = NULL, status = ? WHERE id = ?`,
			models.RequestStatusAvailable, requestID); err != nil {
			return fmt.Errorf("failed to revert request: %w", err)
		}
	}

	message := fmt.Sprintf("%s cancelled their engagement on your request %q", csrName, req.Title)
	return AddNotification(tx, req.PinID, models.NotificationInterested, message, requestID)
}

// MarkCompleted moves an assigned request and its winning offer to
// Completed. A request with no assigned CSR cannot complete.
func MarkCompleted(tx *sql.Tx, requestID, pinID int64) error {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return err
	}
	if req.PinID != pinID {
		return ErrNotFound
	}
	if !req.CsrID.Valid {
		return ErrNotAssigned
	}

	if _, err := tx.Exec(`UPDATE pin_requests SET status = ? WHERE id = ?`,
		models.RequestStatusCompleted, requestID); err != nil {
		return fmt.Errorf("failed to complete request: %w", err)
	}

	if _, err := tx.Exec(`UPDATE csr_offers SET status = ? WHERE csr_id = ? AND request_id = ?`,
		models.OfferStatusCompleted, req.CsrID.Int64, requestID); err != nil {
		return fmt.Errorf("failed to complete offer: %w", err)
	}

	return nil
}

// AddShortlist bookmarks a request for a CSR. Shortlisting is independent
// of the offer lifecycle; only the add fires a notification.
func AddShortlist(tx *sql.Tx, csrID, requestID int64, csrName string) error {
	req, err := lockRequest(tx, requestID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`INSERT IGNORE INTO csr_shortlists (csr_id, request_id) VALUES (?, ?)`,
		csrID, requestID)
	if err != nil {
		return fmt.Errorf("failed to shortlist request: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Already shortlisted; keep the toggle idempotent and silent.
		return nil
	}

	if _, err := tx.Exec(`UPDATE pin_requests SET shortlist_count = shortlist_count + 1 WHERE id = ?`,
		requestID); err != nil {
		return fmt.Errorf("failed to bump shortlist count: %w", err)
	}

	message := fmt.Sprintf("%s shortlisted your request %q", csrName, req.Title)
	return AddNotification(tx, req.PinID, models.NotificationShortlist, message, requestID)
}

func RemoveShortlist(db DBTX, csrID, requestID int64) error {
	result, err := db.Exec(`DELETE FROM csr_shortlists WHERE csr_id = ? AND request_id = ?`,
		csrID, requestID)
	if err != nil {
		return fmt.Errorf("failed to remove shortlist entry: %w", err)
	}
	return requireRow(result)
}

// ListShortlisted returns the requests a CSR has bookmarked.
func ListShortlisted(db DBTX, csrID int64) ([]*models.PinRequest, error) {
	return queryRequests(db, `SELECT`+requestColumns+requestJoins+`
		JOIN csr_shortlists s ON s.request_id = pr.id
		WHERE s.csr_id = ? ORDER BY s.created_at DESC`, csrID)
}

// ListInterested returns the requests a CSR has declared interest in.
func ListInterested(db DBTX, csrID int64) ([]*models.PinRequest, error) {
	return queryRequests(db, `SELECT`+requestColumns+requestJoins+`
		JOIN csr_interests i ON i.request_id = pr.id
		WHERE i.csr_id = ? ORDER BY i.created_at DESC`, csrID)
}

// ListOffers returns a CSR's offer records with the request title and
// status joined in.
func ListOffers(db DBTX, csrID int64) ([]*models.CsrOffer, error) {
	rows, err := db.Query(`SELECT o.id, o.csr_id, o.request_id, o.status,
		o.created_at, o.updated_at, pr.title, pr.status
		FROM csr_offers o
		JOIN pin_requests pr ON o.request_id = pr.id
		WHERE o.csr_id = ? ORDER BY o.updated_at DESC`, csrID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.CsrOffer
	for rows.Next() {
		var offer models.CsrOffer
		if err := rows.Scan(&offer.ID, &offer.CsrID, &offer.RequestID, &offer.Status,
			&offer.CreatedAt, &offer.UpdatedAt, &offer.RequestTitle, &offer.RequestStatus); err != nil {
			return nil, err
		}
		offers = append(offers, &offer)
	}
	return offers, rows.Err()
}
