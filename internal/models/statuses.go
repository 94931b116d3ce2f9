package models

type UserRole string
type CampaignStatus string
type InvitationStatus string
type DraftStatus string
type FeedbackType string
type ContentType string

const (
	UserRoleInfluencer UserRole = "influencer"
	UserRoleBrand      UserRole = "brand"
	UserRoleAdmin      UserRole = "admin"

	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"

	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusRejected  InvitationStatus = "rejected"
	InvitationStatusCompleted InvitationStatus = "completed"

	DraftStatusDraft             DraftStatus = "draft"
	DraftStatusSubmitted         DraftStatus = "submitted"
	DraftStatusUnderReview       DraftStatus = "under_review"
	DraftStatusApproved          DraftStatus = "approved"
	DraftStatusRejected          DraftStatus = "rejected"
	DraftStatusRevisionRequested DraftStatus = "revision_requested"
	DraftStatusPublished         DraftStatus = "published"

	FeedbackTypeComment   FeedbackType = "comment"
	FeedbackTypeApproval  FeedbackType = "approval"
	FeedbackTypeRejection FeedbackType = "rejection"
	FeedbackTypeRevision  FeedbackType = "revision"

	ContentTypePost     ContentType = "post"
	ContentTypeReel     ContentType = "reel"
	ContentTypeStory    ContentType = "story"
	ContentTypeCarousel ContentType = "carousel"
	ContentTypeVideo    ContentType = "video"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleInfluencer, UserRoleBrand, UserRoleAdmin:
		return true
	}
	return false
}

func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted,
		InvitationStatusRejected, InvitationStatusCompleted:
		return true
	}
	return false
}

func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusSubmitted, DraftStatusUnderReview, DraftStatusApproved,
		DraftStatusRejected, DraftStatusRevisionRequested, DraftStatusPublished:
		return true
	}
	return false
}

// IsTerminal - из этих статусов переходов нет
func (s DraftStatus) IsTerminal() bool {
	return s == DraftStatusRejected || s == DraftStatusPublished
}

func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypePost, ContentTypeReel, ContentTypeStory, ContentTypeCarousel, ContentTypeVideo:
		return true
	}
	return false
}
