package learningpb

import "time"

type Chapter struct {
	ChapterId string `json:"chapterId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Video     string `json:"video,omitempty"`
}

type Section struct {
	SectionId          string    `json:"sectionId"`
	SectionTitle       string    `json:"sectionTitle"`
	SectionDescription string    `json:"sectionDescription,omitempty"`
	Chapters           []Chapter `json:"chapters"`
}

type Enrollment struct {
	UserId     string    `json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type Course struct {
	CourseId    string       `json:"courseId"`
	TeacherId   string       `json:"teacherId"`
	TeacherName string       `json:"teacherName"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Image       string       `json:"image,omitempty"`
	Price       int64        `json:"price"`
	Level       string       `json:"level"`
	Status      string       `json:"status"`
	Sections    []Section    `json:"sections"`
	Enrollments []Enrollment `json:"enrollments"`
}

type ChapterProgress struct {
	ChapterId string `json:"chapterId"`
	Completed bool   `json:"completed"`
}

type SectionProgress struct {
	SectionId string            `json:"sectionId"`
	Chapters  []ChapterProgress `json:"chapters"`
}

type UserCourseProgress struct {
	UserId                string            `json:"userId"`
	CourseId              string            `json:"courseId"`
	EnrollmentDate        time.Time         `json:"enrollmentDate"`
	OverallProgress       float64           `json:"overallProgress"`
	Sections              []SectionProgress `json:"sections"`
	LastAccessedTimestamp time.Time         `json:"lastAccessedTimestamp"`
}

type Transaction struct {
	UserId          string    `json:"userId"`
	TransactionId   string    `json:"transactionId"`
	DateTime        time.Time `json:"dateTime"`
	CourseId        string    `json:"courseId"`
	Amount          int64     `json:"amount"`
	PaymentProvider string    `json:"paymentProvider"`
}

// Warning сопровождает успешный ответ, если зачисление прошло не полностью.
type Warning struct {
	Code    string   `json:"code"`
	Steps   []string `json:"steps"`
	Message string   `json:"message"`
}

type GetCourseRequest struct {
	CourseId string `json:"courseId"`
}

type ListCoursesRequest struct {
	Category string `json:"category,omitempty"`
}

type ListCoursesResponse struct {
	Courses []Course `json:"courses"`
}

type CourseResponse struct {
	Course Course `json:"course"`
}

type AttachChapterVideoRequest struct {
	CallerId  string `json:"callerId"`
	CourseId  string `json:"courseId"`
	SectionId string `json:"sectionId"`
	ChapterId string `json:"chapterId"`
	VideoUrl  string `json:"videoUrl"`
}

type GetProgressRequest struct {
	CallerId string `json:"callerId"`
	UserId   string `json:"userId"`
	CourseId string `json:"courseId"`
}

type UpdateProgressRequest struct {
	CallerId string            `json:"callerId"`
	UserId   string            `json:"userId"`
	CourseId string            `json:"courseId"`
	Sections []SectionProgress `json:"sections"`
}

type ProgressResponse struct {
	Progress UserCourseProgress `json:"progress"`
}

type GetEnrolledCoursesRequest struct {
	CallerId string `json:"callerId"`
	UserId   string `json:"userId"`
}

type RecordPurchaseRequest struct {
	CallerId        string `json:"callerId"`
	UserId          string `json:"userId"`
	CourseId        string `json:"courseId"`
	TransactionId   string `json:"transactionId"`
	Amount          int64  `json:"amount"`
	PaymentProvider string `json:"paymentProvider"`
}

type ResumeEnrollmentRequest struct {
	CallerId      string `json:"callerId"`
	UserId        string `json:"userId"`
	CourseId      string `json:"courseId"`
	TransactionId string `json:"transactionId"`
}

type PurchaseResponse struct {
	Transaction Transaction         `json:"transaction"`
	Progress    *UserCourseProgress `json:"courseProgress,omitempty"`
	Warning     *Warning            `json:"warning,omitempty"`
}

type ListTransactionsRequest struct {
	CallerId string `json:"callerId"`
	UserId   string `json:"userId,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
