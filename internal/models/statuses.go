package models

type UserRole string

const (
	UserRoleBrand      UserRole = "brand"
	UserRoleInfluencer UserRole = "influencer"
	UserRoleAdmin      UserRole = "admin"
)

// JobStatus is the posting lifecycle. Archiving is one-way.
type JobStatus int

const (
	JobStatusOpen       JobStatus = 1
	JobStatusInProgress JobStatus = 2
	JobStatusArchived   JobStatus = 3
)

func (s JobStatus) String() string {
	switch s {
	case JobStatusOpen:
		return "open"
	case JobStatusInProgress:
		return "in_progress"
	case JobStatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// ApplicationBucket partitions a posting's candidates. A profile sits in at
// most one bucket per posting (unique index on the join table).
type ApplicationBucket string

const (
	BucketApplied  ApplicationBucket = "applied"
	BucketAccepted ApplicationBucket = "accepted"
	BucketRejected ApplicationBucket = "rejected"
	BucketSent     ApplicationBucket = "sent"
)

// OrderStatus is the order lifecycle. The ids are part of the wire contract;
// OrderTransitions below is the single authority for legal moves.
type OrderStatus int

const (
	OrderStatusAwaiting          OrderStatus = 1
	OrderStatusProcessingPayment OrderStatus = 2
	OrderStatusRejected          OrderStatus = 3
	OrderStatusAccepted          OrderStatus = 4
	OrderStatusInProgress        OrderStatus = 5
	OrderStatusConfirmed         OrderStatus = 6
	OrderStatusCanceled          OrderStatus = 7
	OrderStatusReviewed          OrderStatus = 8
	OrderStatusDisputed          OrderStatus = 9
	OrderStatusDelivered         OrderStatus = 10
	OrderStatusOnHold            OrderStatus = 11
)

// OrderTransitions enumerates every legal forward move. Statuses missing from
// the map (rejected, canceled, reviewed) are terminal.
var OrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusAwaiting:          {OrderStatusAccepted, OrderStatusRejected, OrderStatusCanceled},
	OrderStatusAccepted:          {OrderStatusProcessingPayment, OrderStatusCanceled},
	OrderStatusProcessingPayment: {OrderStatusInProgress, OrderStatusCanceled},
	OrderStatusInProgress:        {OrderStatusDelivered},
	OrderStatusDelivered:         {OrderStatusConfirmed, OrderStatusDisputed},
	OrderStatusConfirmed:         {OrderStatusReviewed},
	OrderStatusDisputed:          {OrderStatusConfirmed, OrderStatusCanceled, OrderStatusOnHold},
	OrderStatusOnHold:            {OrderStatusConfirmed, OrderStatusCanceled},
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range OrderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(OrderTransitions[s]) == 0
}

// DeliveryDateEditable reports whether the requested delivery date may still
// be changed. Edits are only allowed pre-delivery.
func (s OrderStatus) DeliveryDateEditable() bool {
	switch s {
	case OrderStatusAwaiting, OrderStatusAccepted, OrderStatusProcessingPayment, OrderStatusInProgress:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusAwaiting:
		return "awaiting"
	case OrderStatusProcessingPayment:
		return "processing_payment"
	case OrderStatusRejected:
		return "rejected"
	case OrderStatusAccepted:
		return "accepted"
	case OrderStatusInProgress:
		return "in_progress"
	case OrderStatusConfirmed:
		return "confirmed"
	case OrderStatusCanceled:
		return "canceled"
	case OrderStatusReviewed:
		return "reviewed"
	case OrderStatusDisputed:
		return "disputed"
	case OrderStatusDelivered:
		return "delivered"
	case OrderStatusOnHold:
		return "on_hold"
	default:
		return "unknown"
	}
}
