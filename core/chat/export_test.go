package chat

// SystemPrompt exposes systemPrompt to the external test package.
const SystemPrompt = systemPrompt
