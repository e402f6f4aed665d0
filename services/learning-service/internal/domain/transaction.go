package domain

import "time"

const ProviderStripe = "stripe"

// MaxAmount - наибольшая сумма, которая проходит через gRPC без потери точности
// (числа в google.protobuf.Struct хранятся как double).
const MaxAmount int64 = 1<<53 - 1

// Поддерживаемые платёжные провайдеры.
var PaymentProviders = map[string]bool{
	ProviderStripe: true,
}

type Transaction struct {
	UserID          string    `json:"userId"`
	TransactionID   string    `json:"transactionId"`
	DateTime        time.Time `json:"dateTime"`
	CourseID        string    `json:"courseId"`
	Amount          int64     `json:"amount"` // в минимальных единицах валюты
	PaymentProvider string    `json:"paymentProvider"`
}
