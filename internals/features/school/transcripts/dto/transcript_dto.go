// file: internals/features/school/transcripts/dto/transcript_dto.go
package dto

type ReviewTranscriptRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
