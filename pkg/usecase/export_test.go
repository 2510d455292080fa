package usecase

// TruncateRunes is exported for testing
var TruncateRunes = truncateRunes

// GenerationSettings is exported for testing
var GenerationSettings = generationSettings

// DecodeBase64Text is exported for testing
var DecodeBase64Text = decodeBase64Text
